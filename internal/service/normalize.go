package service

import (
	"strings"
	"time"

	"github.com/redutron/backend/internal/constants"

	"github.com/shopspring/decimal"
)

// ParseLocaleNumber 解析本地化数字
// 兼容巴西格式（1.234,56）与英文格式（1,234.56），去除货币前缀 R$ 与空格。
// 空串、"nan" 与无法解析的残余一律视为 0，永不报错。
func ParseLocaleNumber(value string) decimal.Decimal {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, "nan") {
		return decimal.Zero
	}
	v = strings.ReplaceAll(v, "R$", "")
	v = strings.ReplaceAll(v, " ", "")
	if strings.Contains(v, ",") && strings.Contains(v, ".") {
		// 逗号为小数分隔符，点为千分位
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	} else {
		v = strings.ReplaceAll(v, ",", ".")
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// 日期解析候选格式，统一规范化为 YYYY-MM-DD。
var flexibleDateLayouts = []string{
	constants.DateLayout,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// ParseFlexibleDate 解析日期并规范化为 YYYY-MM-DD
// 无法识别的输入原样透传（仅去掉首尾空白），不报错。
func ParseFlexibleDate(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	for _, layout := range flexibleDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(constants.DateLayout)
		}
	}
	return v
}

// NormalizeDate 校验并规范化 API 传入的日期（严格 ISO）
func NormalizeDate(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", ErrInvalidDate
	}
	t, err := time.Parse(constants.DateLayout, v)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(constants.DateLayout), nil
}
