package chain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "Token程序余额不足错误码",
			err:  errors.New("Transaction simulation failed: Error processing Instruction 0: custom program error: 0x1"),
			want: KindInsufficientBalance,
		},
		{
			name: "Token程序持有者不匹配错误码",
			err:  errors.New("custom program error: 0x4"),
			want: KindAuthority,
		},
		{
			name: "缺少签名",
			err:  errors.New("Transaction failed: missing required signature for instruction"),
			want: KindAuthority,
		},
		{
			name: "付费账户lamports不足",
			err:  errors.New("Attempt to debit an account but found no record: insufficient lamports 0, need 1461600"),
			want: KindFunding,
		},
		{
			name: "连接被拒绝",
			err:  errors.New(`Post "http://127.0.0.1:8899": dial tcp 127.0.0.1:8899: connect: connection refused`),
			want: KindConnection,
		},
		{
			name: "请求超时",
			err:  errors.New("context deadline exceeded"),
			want: KindConnection,
		},
		{
			name: "未识别错误",
			err:  errors.New("some other failure"),
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError("transfer", nil))

	err := wrapError("transfer", errors.New("custom program error: 0x1"))
	assert.Equal(t, KindInsufficientBalance, KindOf(err))
	assert.Contains(t, err.Error(), "transfer")

	// 已分类的错误不被二次包装
	rewrapped := wrapError("burn", err)
	assert.Equal(t, err, rewrapped)
	assert.Equal(t, KindInsufficientBalance, KindOf(rewrapped))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
