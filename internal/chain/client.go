package chain

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

const (
	defaultConfirmTimeout = 60 * time.Second
	defaultPollInterval   = 500 * time.Millisecond
)

// Config 链客户端配置
type Config struct {
	// Endpoint RPC端点URL
	Endpoint string
	// Commitment 发送与查询使用的确认等级
	Commitment rpc.CommitmentType
	// ConfirmTimeout 单笔交易等待确认的上限
	ConfirmTimeout time.Duration
	// PollInterval 确认状态轮询间隔
	PollInterval time.Duration
}

// Client SPL Token操作客户端，所有操作阻塞至链上确认
type Client struct {
	rpc            *rpc.Client
	commitment     rpc.CommitmentType
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

// New 创建链客户端
func New(cfg Config) *Client {
	if cfg.Commitment == "" {
		cfg.Commitment = rpc.CommitmentConfirmed
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = defaultConfirmTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	return &Client{
		rpc:            rpc.New(cfg.Endpoint),
		commitment:     cfg.Commitment,
		confirmTimeout: cfg.ConfirmTimeout,
		pollInterval:   cfg.PollInterval,
	}
}

// Balance 查询账户SOL余额(lamports)
func (c *Client) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	resp, err := c.rpc.GetBalance(ctx, account, c.commitment)
	if err != nil {
		return 0, wrapError("get_balance", errors.Wrapf(err, "查询账户%s余额失败", account))
	}
	return resp.Value, nil
}

// RequestAirdrop 请求空投(仅devnet/本地网络有效)
func (c *Client) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := c.rpc.RequestAirdrop(ctx, account, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, wrapError("request_airdrop", errors.Wrapf(err, "账户%s空投失败", account))
	}
	return sig, nil
}
