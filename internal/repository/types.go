package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// SaleListFilter 查询销售列表的过滤条件
// 日期为规范化的 YYYY-MM-DD 字符串，按字典序比较即按时间比较。
type SaleListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	DateFrom  string
	DateTo    string
	Source    string
}

// StockEntryListFilter 查询入库流水的过滤条件
type StockEntryListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	DateFrom  string
	DateTo    string
	Origin    string
}
