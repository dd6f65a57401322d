package service

import (
	"github.com/redutron/backend/internal/constants"
	"github.com/redutron/backend/internal/logger"
	"github.com/redutron/backend/internal/repository"

	"github.com/shopspring/decimal"
)

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// Rates 报表用的税率与运营费率（小数形式，0.05 = 5%）
type Rates struct {
	TaxPct     decimal.Decimal `json:"tax_pct"`
	ExpensePct decimal.Decimal `json:"expense_pct"`
}

// GetRates 读取税率与运营费率，缺失或损坏时回退默认值
func (s *SettingService) GetRates() (Rates, error) {
	tax, err := s.rateOrDefault(constants.SettingKeyTaxPct, constants.DefaultTaxPct)
	if err != nil {
		return Rates{}, err
	}
	expense, err := s.rateOrDefault(constants.SettingKeyExpensePct, constants.DefaultExpensePct)
	if err != nil {
		return Rates{}, err
	}
	return Rates{TaxPct: tax, ExpensePct: expense}, nil
}

func (s *SettingService) rateOrDefault(key, fallback string) (decimal.Decimal, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return decimal.Zero, err
	}
	raw := fallback
	if setting != nil && setting.Value != "" {
		raw = setting.Value
	}
	value, parseErr := decimal.NewFromString(raw)
	if parseErr != nil {
		logger.Warnw("setting_rate_corrupted", "key", key, "value", raw)
		return decimal.RequireFromString(fallback), nil
	}
	return value, nil
}

// SetRates 保存税率与运营费率
func (s *SettingService) SetRates(rates Rates) (Rates, error) {
	if !validRate(rates.TaxPct) || !validRate(rates.ExpensePct) {
		return Rates{}, ErrInvalidRate
	}
	if _, err := s.repo.Upsert(constants.SettingKeyTaxPct, rates.TaxPct.String()); err != nil {
		return Rates{}, err
	}
	if _, err := s.repo.Upsert(constants.SettingKeyExpensePct, rates.ExpensePct.String()); err != nil {
		return Rates{}, err
	}
	logger.Infow("rates_updated",
		"tax_pct", rates.TaxPct.String(),
		"expense_pct", rates.ExpensePct.String(),
	)
	return rates, nil
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(1))
}
