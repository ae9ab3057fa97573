package utils

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func ConvertToJsonString(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}

// GetDisplayAddress 获取用于展示的链上地址缩写
func GetDisplayAddress(address string) string {
	// 检查地址长度
	if len(address) > 9 {
		return fmt.Sprintf("%s...%s", address[:6], address[len(address)-4:])
	}
	// 如果地址不够长，直接返回原始地址
	return address
}

// FormatAmountWithDecimals 将raw数量按精度格式化为人类可读金额
func FormatAmountWithDecimals(amount string, decimals int32) string {
	if amount == "" {
		return "0"
	}

	// 使用decimal包转换字符串为高精度数值
	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return amount // 如果无法转换，直接返回原字符串
	}

	if amountDecimal.IsZero() {
		return "0"
	}

	// 使用高精度除法计算实际值
	actualAmount := amountDecimal.Shift(-decimals)

	// 转换为float进行后续格式化
	amountFloat, _ := actualAmount.Float64()

	// 如果金额很大，使用适当的格式
	if amountFloat >= 1000000 {
		return fmt.Sprintf("%.2fM", amountFloat/1000000)
	} else if amountFloat >= 1000 {
		return fmt.Sprintf("%.2fK", amountFloat/1000)
	}

	// 对于小数，保留合适的精度
	if amountFloat < 0.0001 && amountFloat > 0 {
		return actualAmount.Truncate(8).String()
	} else if amountFloat < 0.01 && amountFloat > 0 {
		return actualAmount.Truncate(6).String()
	} else if amountFloat < 1 && amountFloat > 0 {
		return actualAmount.Truncate(4).String()
	}

	return actualAmount.Truncate(2).String()
}
