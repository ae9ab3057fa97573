package wallet

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/ninja0404/token-wizard/pkg/logger"
)

const (
	// fundingThreshold 余额低于该值时触发空投补充
	fundingThreshold = solana.LAMPORTS_PER_SOL
	// airdropAmount 单次空投数量
	airdropAmount = solana.LAMPORTS_PER_SOL

	fundingPollInterval = time.Second
	fundingPollAttempts = 30
)

// Funder 付费账户补充资金所需的链上能力
type Funder interface {
	Balance(ctx context.Context, account solana.PublicKey) (uint64, error)
	RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error)
}

// Provider 负责付费钱包的加载、生成与资金保障
type Provider struct {
	path string
}

// NewProvider 创建钱包提供器，path为solana-keygen格式密钥文件路径
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Obtain 加载密钥文件，不存在时生成新钱包并落盘
func (p *Provider) Obtain() (solana.PrivateKey, error) {
	key, err := loadKeypair(p.path)
	if err == nil {
		logger.Info("🔑 已加载付费钱包",
			logger.FieldAddress("wallet", key.PublicKey().String()),
			logger.String("path", p.path))
		return key, nil
	}
	if !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}

	wallet := solana.NewWallet()
	if err := saveKeypair(p.path, wallet.PrivateKey); err != nil {
		return nil, err
	}
	logger.Info("🔑 已生成新付费钱包",
		logger.FieldAddress("wallet", wallet.PublicKey().String()),
		logger.String("path", p.path))
	return wallet.PrivateKey, nil
}

// EnsureFunded 检查余额并在不足时空投补充，阻塞直到资金到账
func (p *Provider) EnsureFunded(ctx context.Context, funder Funder, account solana.PublicKey) error {
	balance, err := funder.Balance(ctx, account)
	if err != nil {
		return errors.Wrap(err, "查询付费钱包余额失败")
	}
	if balance >= fundingThreshold {
		return nil
	}

	logger.Info("💧 付费钱包余额不足，请求空投",
		logger.FieldAddress("wallet", account.String()),
		logger.Uint64("balance", balance),
		logger.Uint64("airdrop", airdropAmount))

	if _, err := funder.RequestAirdrop(ctx, account, airdropAmount); err != nil {
		return errors.Wrap(err, "空投请求失败")
	}

	for i := 0; i < fundingPollAttempts; i++ {
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "等待空投到账被取消")
		case <-time.After(fundingPollInterval):
		}

		current, err := funder.Balance(ctx, account)
		if err != nil {
			continue
		}
		if current > balance {
			logger.Info("✅ 空投到账", logger.Uint64("balance", current))
			return nil
		}
	}
	return errors.Errorf("空投%d lamports未在%s内到账", airdropAmount,
		fundingPollInterval*fundingPollAttempts)
}

// loadKeypair 读取solana-keygen格式(64字节JSON整数数组)密钥文件
func loadKeypair(path string) (solana.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "读取密钥文件%s失败", path)
	}

	var raw []byte
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, errors.Wrapf(err, "解析密钥文件%s失败", path)
	}
	for _, v := range ints {
		if v < 0 || v > 255 {
			return nil, errors.Errorf("密钥文件%s含非法字节值%d", path, v)
		}
		raw = append(raw, byte(v))
	}
	if len(raw) != 64 {
		return nil, errors.Errorf("密钥文件%s长度%d非法，应为64字节", path, len(raw))
	}
	return solana.PrivateKey(raw), nil
}

// saveKeypair 以solana-keygen兼容格式写入密钥文件
func saveKeypair(path string, key solana.PrivateKey) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "创建密钥目录%s失败", dir)
		}
	}

	// json.Marshal对[]byte编码为base64，须转为整数数组保持与solana-keygen互通
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return errors.Wrap(err, "编码密钥失败")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "写入密钥文件%s失败", path)
	}
	return nil
}
