package wallet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeypairRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "payer.json")
	wallet := solana.NewWallet()

	require.NoError(t, saveKeypair(path, wallet.PrivateKey))

	loaded, err := loadKeypair(path)
	require.NoError(t, err)
	assert.Equal(t, wallet.PrivateKey, loaded)
	assert.Equal(t, wallet.PublicKey(), loaded.PublicKey())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestObtainGeneratesThenReuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payer.json")
	p := NewProvider(path)

	first, err := p.Obtain()
	require.NoError(t, err)
	assert.FileExists(t, path)

	second, err := p.Obtain()
	require.NoError(t, err)
	assert.Equal(t, first.PublicKey(), second.PublicKey())
}

func TestLoadKeypairRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte("[1,2,3]"), 0o600))
	_, err := loadKeypair(short)
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0o600))
	_, err = loadKeypair(garbage)
	assert.Error(t, err)

	outOfRange := filepath.Join(dir, "range.json")
	require.NoError(t, os.WriteFile(outOfRange, []byte("[300]"), 0o600))
	_, err = loadKeypair(outOfRange)
	assert.Error(t, err)
}

type fakeFunder struct {
	balance     uint64
	airdropped  uint64
	airdropErr  error
	airdropHits int
}

func (f *fakeFunder) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	return f.balance, nil
}

func (f *fakeFunder) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error) {
	if f.airdropErr != nil {
		return solana.Signature{}, f.airdropErr
	}
	f.airdropHits++
	f.airdropped = lamports
	// 空投立即到账
	f.balance += lamports
	return solana.Signature{}, nil
}

func TestEnsureFundedSkipsWhenSufficient(t *testing.T) {
	p := NewProvider("")
	funder := &fakeFunder{balance: 2 * solana.LAMPORTS_PER_SOL}

	err := p.EnsureFunded(context.Background(), funder, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Zero(t, funder.airdropHits)
}

func TestEnsureFundedAirdropsWhenLow(t *testing.T) {
	p := NewProvider("")
	funder := &fakeFunder{balance: 0}

	err := p.EnsureFunded(context.Background(), funder, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, 1, funder.airdropHits)
	assert.Equal(t, uint64(airdropAmount), funder.airdropped)
}
