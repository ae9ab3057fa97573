package workflow

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/token-wizard/internal/chain"
	"github.com/ninja0404/token-wizard/internal/config"
	"github.com/ninja0404/token-wizard/internal/explorer"
)

// fakeMint 内存Mint账本记录
type fakeMint struct {
	decimals  uint8
	supply    uint64
	authority solana.PublicKey
}

// fakeAccount 内存Token账户记录
type fakeAccount struct {
	mint      solana.PublicKey
	owner     solana.PublicKey
	balance   uint64
	delegate  *solana.PublicKey
	delegated uint64
}

// fakeLedger 按SPL Token语义模拟的内存账本
type fakeLedger struct {
	mints    map[solana.PublicKey]*fakeMint
	accounts map[solana.PublicKey]*fakeAccount
	calls    []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		mints:    make(map[solana.PublicKey]*fakeMint),
		accounts: make(map[solana.PublicKey]*fakeAccount),
	}
}

func randomSignature() solana.Signature {
	var sig solana.Signature
	_, _ = rand.Read(sig[:])
	return sig
}

func (f *fakeLedger) CreateMint(ctx context.Context, payer *solana.PrivateKey, decimals uint8) (solana.PublicKey, solana.Signature, error) {
	f.calls = append(f.calls, "create_mint")
	mint := solana.NewWallet().PublicKey()
	f.mints[mint] = &fakeMint{decimals: decimals, authority: payer.PublicKey()}
	return mint, randomSignature(), nil
}

func (f *fakeLedger) GetMint(ctx context.Context, mint solana.PublicKey) (*chain.MintInfo, error) {
	f.calls = append(f.calls, "get_mint")
	m, ok := f.mints[mint]
	if !ok {
		return nil, assert.AnError
	}
	authority := m.authority
	return &chain.MintInfo{
		Address:       mint,
		Decimals:      m.decimals,
		Supply:        m.supply,
		MintAuthority: &authority,
	}, nil
}

func (f *fakeLedger) GetOrCreateAssociatedTokenAccount(ctx context.Context, payer *solana.PrivateKey, owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, solana.Signature, error) {
	f.calls = append(f.calls, "get_or_create_ata")
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, err
	}
	if _, ok := f.accounts[ata]; ok {
		return ata, solana.Signature{}, nil
	}
	f.accounts[ata] = &fakeAccount{mint: mint, owner: owner}
	return ata, randomSignature(), nil
}

func (f *fakeLedger) MintTo(ctx context.Context, payer *solana.PrivateKey, mint solana.PublicKey, destination solana.PublicKey, authority *solana.PrivateKey, amount uint64) (solana.Signature, error) {
	f.calls = append(f.calls, "mint_to")
	m, ok := f.mints[mint]
	if !ok || !m.authority.Equals(authority.PublicKey()) {
		return solana.Signature{}, &chain.Error{Kind: chain.KindAuthority, Op: "mint_to", Err: assert.AnError}
	}
	acct := f.accounts[destination]
	acct.balance += amount
	m.supply += amount
	return randomSignature(), nil
}

func (f *fakeLedger) Transfer(ctx context.Context, payer *solana.PrivateKey, source solana.PublicKey, destination solana.PublicKey, authority *solana.PrivateKey, amount uint64) (solana.Signature, error) {
	f.calls = append(f.calls, "transfer")
	src := f.accounts[source]
	dst := f.accounts[destination]

	authorized := src.owner.Equals(authority.PublicKey())
	if !authorized && src.delegate != nil && src.delegate.Equals(authority.PublicKey()) {
		if amount > src.delegated {
			return solana.Signature{}, &chain.Error{Kind: chain.KindInsufficientBalance, Op: "transfer", Err: assert.AnError}
		}
		src.delegated -= amount
		authorized = true
	}
	if !authorized {
		return solana.Signature{}, &chain.Error{Kind: chain.KindAuthority, Op: "transfer", Err: assert.AnError}
	}
	if amount > src.balance {
		return solana.Signature{}, &chain.Error{Kind: chain.KindInsufficientBalance, Op: "transfer", Err: assert.AnError}
	}
	src.balance -= amount
	dst.balance += amount
	return randomSignature(), nil
}

func (f *fakeLedger) Approve(ctx context.Context, payer *solana.PrivateKey, source solana.PublicKey, delegate solana.PublicKey, owner *solana.PrivateKey, amount uint64) (solana.Signature, error) {
	f.calls = append(f.calls, "approve")
	src := f.accounts[source]
	if !src.owner.Equals(owner.PublicKey()) {
		return solana.Signature{}, &chain.Error{Kind: chain.KindAuthority, Op: "approve", Err: assert.AnError}
	}
	d := delegate
	src.delegate = &d
	src.delegated = amount
	return randomSignature(), nil
}

func (f *fakeLedger) Revoke(ctx context.Context, payer *solana.PrivateKey, source solana.PublicKey, owner *solana.PrivateKey) (solana.Signature, error) {
	f.calls = append(f.calls, "revoke")
	src := f.accounts[source]
	if !src.owner.Equals(owner.PublicKey()) {
		return solana.Signature{}, &chain.Error{Kind: chain.KindAuthority, Op: "revoke", Err: assert.AnError}
	}
	src.delegate = nil
	src.delegated = 0
	return randomSignature(), nil
}

func (f *fakeLedger) Burn(ctx context.Context, payer *solana.PrivateKey, source solana.PublicKey, mint solana.PublicKey, owner *solana.PrivateKey, amount uint64) (solana.Signature, error) {
	f.calls = append(f.calls, "burn")
	src := f.accounts[source]
	if !src.owner.Equals(owner.PublicKey()) {
		return solana.Signature{}, &chain.Error{Kind: chain.KindAuthority, Op: "burn", Err: assert.AnError}
	}
	if amount > src.balance {
		return solana.Signature{}, &chain.Error{Kind: chain.KindInsufficientBalance, Op: "burn", Err: assert.AnError}
	}
	src.balance -= amount
	f.mints[mint].supply -= amount
	return randomSignature(), nil
}

func (f *fakeLedger) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	f.calls = append(f.calls, "get_token_balance")
	return f.accounts[account].balance, nil
}

func testConfig() config.WorkflowConfig {
	return config.WorkflowConfig{
		Decimals:       3,
		MintAmount:     decimal.NewFromInt(100),
		TransferAmount: decimal.NewFromInt(50),
		BurnAmount:     decimal.NewFromInt(50),
	}
}

func newTestRunner(ledger Ledger, cfg config.WorkflowConfig) (*Runner, solana.PrivateKey) {
	payer := solana.NewWallet().PrivateKey
	return NewRunner(ledger, explorer.New(false), cfg, payer), payer
}

func TestRunFullLifecycle(t *testing.T) {
	ledger := newFakeLedger()
	runner, payer := newTestRunner(ledger, testConfig())

	require.NoError(t, runner.Run(context.Background()))

	// 铸造100按3位精度落账100000，划转与销毁各50000后归零
	ownerATA := findATA(t, ledger, payer.PublicKey())
	assert.Equal(t, uint64(0), ledger.accounts[ownerATA].balance)

	// 委托方账户收到划转的50000
	var delegateBalance uint64
	for addr, acct := range ledger.accounts {
		if addr != ownerATA {
			delegateBalance = acct.balance
		}
	}
	assert.Equal(t, uint64(50000), delegateBalance)

	assert.Equal(t, []string{
		"create_mint", "get_mint", "get_or_create_ata", "mint_to",
		"get_or_create_ata", "transfer", "revoke", "burn", "get_token_balance",
	}, ledger.calls)
}

func TestRunScalesByOnChainDecimals(t *testing.T) {
	ledger := newFakeLedger()
	cfg := testConfig()
	cfg.TransferAmount = decimal.Zero
	cfg.BurnAmount = decimal.Zero
	runner, payer := newTestRunner(ledger, cfg)

	require.NoError(t, runner.Run(context.Background()))

	ownerATA := findATA(t, ledger, payer.PublicKey())
	assert.Equal(t, uint64(100000), ledger.accounts[ownerATA].balance)
}

func TestRunDelegateTransfer(t *testing.T) {
	ledger := newFakeLedger()
	cfg := testConfig()
	cfg.DelegateTransfer = true
	runner, payer := newTestRunner(ledger, cfg)

	require.NoError(t, runner.Run(context.Background()))

	// 授权步骤插入在划转之前
	assert.Equal(t, []string{
		"create_mint", "get_mint", "get_or_create_ata", "mint_to",
		"get_or_create_ata", "approve", "transfer", "revoke", "burn", "get_token_balance",
	}, ledger.calls)

	// 撤销后委托被清除
	ownerATA := findATA(t, ledger, payer.PublicKey())
	assert.Nil(t, ledger.accounts[ownerATA].delegate)
	assert.Equal(t, uint64(0), ledger.accounts[ownerATA].delegated)
}

func TestRunBurnExceedsBalanceFailsFast(t *testing.T) {
	ledger := newFakeLedger()
	cfg := testConfig()
	// 铸100划转50只剩50000，销毁100000必须被拒绝
	cfg.BurnAmount = decimal.NewFromInt(100)
	runner, payer := newTestRunner(ledger, cfg)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, chain.KindInsufficientBalance, chain.KindOf(err))

	// 失败不回滚，余额保持销毁前状态
	ownerATA := findATA(t, ledger, payer.PublicKey())
	assert.Equal(t, uint64(50000), ledger.accounts[ownerATA].balance)
	// 失败后不再执行后续读余额步骤
	assert.Equal(t, "burn", ledger.calls[len(ledger.calls)-1])
}

func TestGetOrCreateATAIdempotent(t *testing.T) {
	ledger := newFakeLedger()
	payer := solana.NewWallet().PrivateKey
	mint := solana.NewWallet().PublicKey()
	ledger.mints[mint] = &fakeMint{decimals: 3, authority: payer.PublicKey()}

	first, sig1, err := ledger.GetOrCreateAssociatedTokenAccount(context.Background(), &payer, payer.PublicKey(), mint)
	require.NoError(t, err)
	assert.NotEqual(t, solana.Signature{}, sig1)

	second, sig2, err := ledger.GetOrCreateAssociatedTokenAccount(context.Background(), &payer, payer.PublicKey(), mint)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, solana.Signature{}, sig2)
	assert.Len(t, ledger.accounts, 1)
}

func TestRevokeClearsDelegation(t *testing.T) {
	ledger := newFakeLedger()
	ctx := context.Background()

	owner := solana.NewWallet().PrivateKey
	delegate := solana.NewWallet()
	mint := solana.NewWallet().PublicKey()
	ledger.mints[mint] = &fakeMint{decimals: 3, authority: owner.PublicKey()}

	src, _, err := ledger.GetOrCreateAssociatedTokenAccount(ctx, &owner, owner.PublicKey(), mint)
	require.NoError(t, err)
	dst, _, err := ledger.GetOrCreateAssociatedTokenAccount(ctx, &owner, delegate.PublicKey(), mint)
	require.NoError(t, err)

	_, err = ledger.MintTo(ctx, &owner, mint, src, &owner, 100000)
	require.NoError(t, err)
	_, err = ledger.Approve(ctx, &owner, src, delegate.PublicKey(), &owner, 50000)
	require.NoError(t, err)

	// 委托额度内划转成功
	_, err = ledger.Transfer(ctx, &owner, src, dst, &delegate.PrivateKey, 20000)
	require.NoError(t, err)

	// 撤销后委托身份划转报权限错误
	_, err = ledger.Revoke(ctx, &owner, src, &owner)
	require.NoError(t, err)
	_, err = ledger.Transfer(ctx, &owner, src, dst, &delegate.PrivateKey, 10000)
	require.Error(t, err)
	assert.Equal(t, chain.KindAuthority, chain.KindOf(err))
}

func TestTransferConservesBalance(t *testing.T) {
	ledger := newFakeLedger()
	ctx := context.Background()

	owner := solana.NewWallet().PrivateKey
	other := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	ledger.mints[mint] = &fakeMint{decimals: 3, authority: owner.PublicKey()}

	src, _, err := ledger.GetOrCreateAssociatedTokenAccount(ctx, &owner, owner.PublicKey(), mint)
	require.NoError(t, err)
	dst, _, err := ledger.GetOrCreateAssociatedTokenAccount(ctx, &owner, other, mint)
	require.NoError(t, err)

	_, err = ledger.MintTo(ctx, &owner, mint, src, &owner, 100000)
	require.NoError(t, err)
	_, err = ledger.Transfer(ctx, &owner, src, dst, &owner, 50000)
	require.NoError(t, err)

	assert.Equal(t, uint64(50000), ledger.accounts[src].balance)
	assert.Equal(t, uint64(50000), ledger.accounts[dst].balance)
}

func findATA(t *testing.T, ledger *fakeLedger, owner solana.PublicKey) solana.PublicKey {
	t.Helper()
	for addr, acct := range ledger.accounts {
		if acct.owner.Equals(owner) {
			return addr
		}
	}
	t.Fatalf("未找到%s的Token账户", owner)
	return solana.PublicKey{}
}
