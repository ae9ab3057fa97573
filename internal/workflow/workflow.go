package workflow

import (
	"context"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/ninja0404/token-wizard/internal/chain"
	"github.com/ninja0404/token-wizard/internal/config"
	"github.com/ninja0404/token-wizard/internal/explorer"
	"github.com/ninja0404/token-wizard/pkg/logger"
	"github.com/ninja0404/token-wizard/pkg/utils"
)

// Ledger 工作流依赖的链上操作集合，chain.Client为生产实现
type Ledger interface {
	CreateMint(ctx context.Context, payer *solana.PrivateKey, decimals uint8) (solana.PublicKey, solana.Signature, error)
	GetMint(ctx context.Context, mint solana.PublicKey) (*chain.MintInfo, error)
	GetOrCreateAssociatedTokenAccount(ctx context.Context, payer *solana.PrivateKey, owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, solana.Signature, error)
	MintTo(ctx context.Context, payer *solana.PrivateKey, mint solana.PublicKey, destination solana.PublicKey, authority *solana.PrivateKey, amount uint64) (solana.Signature, error)
	Transfer(ctx context.Context, payer *solana.PrivateKey, source solana.PublicKey, destination solana.PublicKey, authority *solana.PrivateKey, amount uint64) (solana.Signature, error)
	Approve(ctx context.Context, payer *solana.PrivateKey, source solana.PublicKey, delegate solana.PublicKey, owner *solana.PrivateKey, amount uint64) (solana.Signature, error)
	Revoke(ctx context.Context, payer *solana.PrivateKey, source solana.PublicKey, owner *solana.PrivateKey) (solana.Signature, error)
	Burn(ctx context.Context, payer *solana.PrivateKey, source solana.PublicKey, mint solana.PublicKey, owner *solana.PrivateKey, amount uint64) (solana.Signature, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
}

// Runner token生命周期工作流编排器
//
// 步骤严格线性执行，前序步骤产出的标识符作为后续步骤输入，
// 任一步骤失败立即中止，不做补偿回滚。
type Runner struct {
	ledger Ledger
	links  *explorer.Links
	cfg    config.WorkflowConfig
	payer  solana.PrivateKey
}

// NewRunner 创建工作流编排器
func NewRunner(ledger Ledger, links *explorer.Links, cfg config.WorkflowConfig, payer solana.PrivateKey) *Runner {
	return &Runner{
		ledger: ledger,
		links:  links,
		cfg:    cfg,
		payer:  payer,
	}
}

// Run 按固定顺序执行完整token生命周期
func (r *Runner) Run(ctx context.Context) error {
	log := logger.LogFromContext(ctx)
	payerPub := r.payer.PublicKey()

	// 步骤1: 创建Mint账户
	mint, sig, err := r.ledger.CreateMint(ctx, &r.payer, r.cfg.Decimals)
	if err != nil {
		return errors.Wrap(err, "创建Mint失败")
	}
	log.Info("🪙 Mint创建成功",
		logger.FieldStep("create_mint"),
		logger.FieldAddress("mint", mint.String()),
		logger.FieldSignature(sig.String()),
		logger.String("link", r.links.Address(mint.String())))

	// 步骤2: 读回Mint信息，精度以链上为准
	mintInfo, err := r.ledger.GetMint(ctx, mint)
	if err != nil {
		return errors.Wrap(err, "读取Mint信息失败")
	}
	log.Info("🔍 Mint信息已读回",
		logger.FieldStep("fetch_mint_info"),
		logger.FieldAddress("mint", mint.String()),
		logger.Uint8("decimals", mintInfo.Decimals),
		logger.Uint64("supply", mintInfo.Supply))

	// 步骤3: 持有者关联Token账户(幂等)
	ownerATA, sig, err := r.ledger.GetOrCreateAssociatedTokenAccount(ctx, &r.payer, payerPub, mint)
	if err != nil {
		return errors.Wrap(err, "创建持有者Token账户失败")
	}
	log.Info("📬 持有者Token账户就绪",
		logger.FieldStep("owner_ata"),
		logger.FieldAddress("account", ownerATA.String()),
		logger.String("link", r.links.Address(ownerATA.String())))

	// 步骤4: 铸造，按链上读回的精度换算
	mintRaw, err := chain.ToBaseUnits(r.cfg.MintAmount, mintInfo.Decimals)
	if err != nil {
		return errors.Wrap(err, "铸造数量换算失败")
	}
	sig, err = r.ledger.MintTo(ctx, &r.payer, mint, ownerATA, &r.payer, mintRaw)
	if err != nil {
		return errors.Wrap(err, "铸造失败")
	}
	log.Info("✨ 铸造完成",
		logger.FieldStep("mint_to"),
		logger.String("amount", r.cfg.MintAmount.String()),
		logger.Uint64("raw", mintRaw),
		logger.FieldSignature(sig.String()),
		logger.String("link", r.links.Tx(sig.String())))

	// 步骤5: 生成委托方keypair，仅接受授权，无需注资
	delegate := solana.NewWallet()
	log.Info("👥 委托方keypair已生成",
		logger.FieldStep("generate_delegate"),
		logger.FieldAddress("delegate", delegate.PublicKey().String()))

	// 步骤6: 委托方关联Token账户(幂等)
	delegateATA, sig, err := r.ledger.GetOrCreateAssociatedTokenAccount(ctx, &r.payer, delegate.PublicKey(), mint)
	if err != nil {
		return errors.Wrap(err, "创建委托方Token账户失败")
	}
	log.Info("📬 委托方Token账户就绪",
		logger.FieldStep("delegate_ata"),
		logger.FieldAddress("account", delegateATA.String()),
		logger.String("link", r.links.Address(delegateATA.String())))

	// 步骤7: 划转，默认持有者签名，delegate_transfer开启时先授权再以委托身份划转
	transferRaw, err := chain.ToBaseUnits(r.cfg.TransferAmount, mintInfo.Decimals)
	if err != nil {
		return errors.Wrap(err, "划转数量换算失败")
	}
	if err := r.transfer(ctx, ownerATA, delegateATA, delegate, transferRaw); err != nil {
		return err
	}

	// 步骤8: 撤销持有者账户上的委托授权，无委托时为幂等空操作
	sig, err = r.ledger.Revoke(ctx, &r.payer, ownerATA, &r.payer)
	if err != nil {
		return errors.Wrap(err, "撤销委托失败")
	}
	log.Info("🚫 委托授权已撤销",
		logger.FieldStep("revoke"),
		logger.FieldSignature(sig.String()),
		logger.String("link", r.links.Tx(sig.String())))

	// 步骤9: 销毁，不做本地余额预检，由链上裁决
	burnRaw, err := chain.ToBaseUnits(r.cfg.BurnAmount, mintInfo.Decimals)
	if err != nil {
		return errors.Wrap(err, "销毁数量换算失败")
	}
	sig, err = r.ledger.Burn(ctx, &r.payer, ownerATA, mint, &r.payer, burnRaw)
	if err != nil {
		return errors.Wrap(err, "销毁失败")
	}
	log.Info("🔥 销毁完成",
		logger.FieldStep("burn"),
		logger.String("amount", r.cfg.BurnAmount.String()),
		logger.Uint64("raw", burnRaw),
		logger.FieldSignature(sig.String()),
		logger.String("link", r.links.Tx(sig.String())))

	balance, err := r.ledger.GetTokenAccountBalance(ctx, ownerATA)
	if err != nil {
		return errors.Wrap(err, "读取最终余额失败")
	}
	log.Info("🎉 工作流执行完成",
		logger.String("owner", utils.GetDisplayAddress(ownerATA.String())),
		logger.String("final_balance", utils.FormatAmountWithDecimals(
			strconv.FormatUint(balance, 10), int32(mintInfo.Decimals))))
	return nil
}

func (r *Runner) transfer(
	ctx context.Context,
	source solana.PublicKey,
	destination solana.PublicKey,
	delegate *solana.Wallet,
	raw uint64,
) error {
	log := logger.LogFromContext(ctx)
	authority := &r.payer

	if r.cfg.DelegateTransfer {
		sig, err := r.ledger.Approve(ctx, &r.payer, source, delegate.PublicKey(), &r.payer, raw)
		if err != nil {
			return errors.Wrap(err, "授权委托失败")
		}
		log.Info("🤝 委托授权完成",
			logger.FieldStep("approve"),
			logger.FieldAddress("delegate", delegate.PublicKey().String()),
			logger.Uint64("raw", raw),
			logger.FieldSignature(sig.String()),
			logger.String("link", r.links.Tx(sig.String())))
		authority = &delegate.PrivateKey
	}

	sig, err := r.ledger.Transfer(ctx, &r.payer, source, destination, authority, raw)
	if err != nil {
		return errors.Wrap(err, "划转失败")
	}
	log.Info("💸 划转完成",
		logger.FieldStep("transfer"),
		logger.String("amount", r.cfg.TransferAmount.String()),
		logger.Uint64("raw", raw),
		logger.FieldSignature(sig.String()),
		logger.String("link", r.links.Tx(sig.String())))
	return nil
}
