package service

import "errors"

// 服务层统一哨兵错误，handler 按 errors.Is 映射到响应码。
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrInvalidQuantity    = errors.New("数量必须为正数")
	ErrInvalidDate        = errors.New("日期格式无效")
	ErrInvalidRate        = errors.New("费率必须在 0 到 1 之间")
	ErrEmptyProductName   = errors.New("商品名称不能为空")
	ErrDuplicateSKU       = errors.New("SKU 已存在")
)
