package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
logger:
  output: stdout
  level: info

network:
  devnet: true

wallet:
  keypair_path: /tmp/test-payer.json

workflow:
  decimals: 3
  mint_amount: 100
  transfer_amount: 50
  burn_amount: 100
  delegate_transfer: false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// 配置源按加载顺序合并，本文件的测试顺序有意从最小配置到完整配置

func TestManagerLoadAppliesDefaults(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Load(writeConfig(t, "logger:\n  level: info\n")))

	cfg := m.GetAppConfig()
	assert.Equal(t, "payer-keypair.json", cfg.Wallet.KeypairPath)
	assert.Equal(t, uint8(3), cfg.Workflow.Decimals)
	assert.Equal(t, "100", cfg.Workflow.MintAmount.String())
	assert.Equal(t, "50", cfg.Workflow.TransferAmount.String())
}

func TestManagerLoad(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Load(writeConfig(t, sampleConfig)))

	cfg := m.GetAppConfig()
	assert.True(t, cfg.Network.Devnet)
	assert.Equal(t, "/tmp/test-payer.json", cfg.Wallet.KeypairPath)
	assert.Equal(t, uint8(3), cfg.Workflow.Decimals)
	assert.Equal(t, "100", cfg.Workflow.MintAmount.String())
	assert.Equal(t, "50", cfg.Workflow.TransferAmount.String())
	assert.Equal(t, "100", cfg.Workflow.BurnAmount.String())
	assert.False(t, cfg.Workflow.DelegateTransfer)
}

func TestManagerLoadMissingFile(t *testing.T) {
	m := NewManager()
	assert.Error(t, m.Load(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestNetworkEndpoint(t *testing.T) {
	assert.Equal(t, rpc.LocalNet_RPC, NetworkConfig{}.Endpoint())
	assert.Equal(t, rpc.DevNet_RPC, NetworkConfig{Devnet: true}.Endpoint())
	assert.Equal(t, "http://example.com:8899",
		NetworkConfig{Devnet: true, RpcURL: "http://example.com:8899"}.Endpoint())
}

func TestWorkflowConfigValidate(t *testing.T) {
	valid := WorkflowConfig{Decimals: 9}
	assert.NoError(t, valid.validate())

	tooManyDecimals := WorkflowConfig{Decimals: 10}
	assert.Error(t, tooManyDecimals.validate())
}
