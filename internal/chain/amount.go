package chain

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ToBaseUnits 将人类可读数量按mint精度换算为raw整数数量(amount × 10^decimals)
// 精度必须来自链上读回的mint信息，调用方不得使用写死的常量
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	if amount.IsNegative() {
		return 0, errors.Errorf("数量不能为负: %s", amount)
	}

	raw := amount.Shift(int32(decimals))
	if !raw.IsInteger() {
		return 0, errors.Errorf("数量%s超出mint精度%d可表示范围", amount, decimals)
	}

	bi := raw.BigInt()
	if !bi.IsUint64() {
		return 0, errors.Errorf("数量%s按精度%d换算后溢出uint64", amount, decimals)
	}

	return bi.Uint64(), nil
}

// FromBaseUnits raw整数数量还原为人类可读数量
func FromBaseUnits(raw uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-int32(decimals))
}

// parseUintAmount RPC返回的余额字符串解析为raw整数数量
func parseUintAmount(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "非法余额字符串: %q", s)
	}
	return v, nil
}

// MustBaseUnits 测试与常量场景下的便捷换算，溢出时panic
func MustBaseUnits(amount int64, decimals uint8) uint64 {
	v, err := ToBaseUnits(decimal.NewFromInt(amount), decimals)
	if err != nil {
		panic(err)
	}
	return v
}
