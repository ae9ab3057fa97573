package explorer

import "fmt"

const baseURL = "https://amman-explorer.metaplex.com"

// Kind 浏览器链接目标类型
type Kind string

const (
	// KindAddress 账户地址详情页
	KindAddress Kind = "address"
	// KindTx 交易详情页
	KindTx Kind = "tx"
)

// Links 生成区块浏览器链接，devnet模式附带cluster参数
type Links struct {
	devnet bool
}

// New 创建链接生成器
func New(devnet bool) *Links {
	return &Links{devnet: devnet}
}

// Address 账户地址详情页链接
func (l *Links) Address(address string) string {
	return l.build(KindAddress, address)
}

// Tx 交易详情页链接
func (l *Links) Tx(signature string) string {
	return l.build(KindTx, signature)
}

func (l *Links) build(kind Kind, value string) string {
	url := fmt.Sprintf("%s/#/%s/%s", baseURL, kind, value)
	if l.devnet {
		url += "?cluster=devnet"
	}
	return url
}
