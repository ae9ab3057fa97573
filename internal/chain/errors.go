package chain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind 链上操作错误类别，与协作方(RPC节点/Token程序)定义的失败语义对应
type Kind int

const (
	KindUnknown Kind = iota
	// KindConnection RPC端点不可达或请求超时
	KindConnection
	// KindFunding 付费账户SOL余额不足以支付手续费/租金
	KindFunding
	// KindAuthority 签名方缺少所需权限
	KindAuthority
	// KindInsufficientBalance 转账/销毁数量超过可用余额或委托额度
	KindInsufficientBalance
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindFunding:
		return "funding"
	case KindAuthority:
		return "authority"
	case KindInsufficientBalance:
		return "insufficient_balance"
	default:
		return "unknown"
	}
}

// Error 带类别与操作名的链上错误
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: [%s] %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf 提取错误类别，非链上错误返回KindUnknown
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// wrapError 分类并包装底层错误，保留errors.Is/As链
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		// 已分类过的错误不重复包装
		return err
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

// SPL Token程序自定义错误码(InstructionError携带)
const (
	splErrInsufficientFunds = "custom program error: 0x1"
	splErrOwnerMismatch     = "custom program error: 0x4"
)

func classify(err error) Kind {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, splErrInsufficientFunds):
		return KindInsufficientBalance
	case strings.Contains(msg, splErrOwnerMismatch),
		strings.Contains(msg, "owner does not match"),
		strings.Contains(msg, "missing required signature"):
		return KindAuthority
	case strings.Contains(msg, "insufficient lamports"),
		strings.Contains(msg, "insufficient funds for"):
		return KindFunding
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"),
		strings.Contains(msg, "connection reset"):
		return KindConnection
	default:
		return KindUnknown
	}
}
