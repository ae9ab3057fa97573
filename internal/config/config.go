package config

import (
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ninja0404/token-wizard/pkg/config"
	"github.com/ninja0404/token-wizard/pkg/config/source"
	"github.com/ninja0404/token-wizard/pkg/config/source/file"
	"github.com/ninja0404/token-wizard/pkg/logger"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
	Network  NetworkConfig  `yaml:"network" json:"network"`
	Wallet   WalletConfig   `yaml:"wallet" json:"wallet"`
	Workflow WorkflowConfig `yaml:"workflow" json:"workflow"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Output     string `yaml:"output" json:"output"`
	Debug      bool   `yaml:"debug" json:"debug"`
	Level      string `yaml:"level" json:"level"`
	AddCaller  bool   `yaml:"add_caller" json:"add_caller"`
	CallerSkip int    `yaml:"caller_skip" json:"caller_skip"`
}

// NetworkConfig 目标网络配置
type NetworkConfig struct {
	// Devnet true连接devnet，false连接本地验证器
	Devnet bool `yaml:"devnet" json:"devnet"`
	// RpcURL 显式RPC端点，留空按Devnet选择默认端点
	RpcURL string `yaml:"rpc_url" json:"rpc_url"`
}

// Endpoint 返回生效的RPC端点
func (n NetworkConfig) Endpoint() string {
	if n.RpcURL != "" {
		return n.RpcURL
	}
	if n.Devnet {
		return rpc.DevNet_RPC
	}
	return rpc.LocalNet_RPC
}

// WalletConfig 付费钱包配置
type WalletConfig struct {
	// KeypairPath solana-keygen格式密钥文件路径,不存在时自动生成
	KeypairPath string `yaml:"keypair_path" json:"keypair_path"`
}

// WorkflowConfig token生命周期工作流配置
type WorkflowConfig struct {
	// Decimals 新mint的小数位数
	Decimals uint8 `yaml:"decimals" json:"decimals"`
	// MintAmount 铸造数量(人类可读)
	MintAmount decimal.Decimal `yaml:"mint_amount" json:"mint_amount"`
	// TransferAmount 划转数量(人类可读)
	TransferAmount decimal.Decimal `yaml:"transfer_amount" json:"transfer_amount"`
	// BurnAmount 销毁数量(人类可读)
	BurnAmount decimal.Decimal `yaml:"burn_amount" json:"burn_amount"`
	// DelegateTransfer true时先授权委托并以委托身份划转
	DelegateTransfer bool `yaml:"delegate_transfer" json:"delegate_transfer"`
}

// Manager 配置管理器
type Manager struct {
	config *AppConfig
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	return &Manager{}
}

// Load 加载配置文件并应用默认值
func (m *Manager) Load(configPath string) error {
	err := config.Load(file.NewSource(
		file.WithPath(configPath),
		source.WithFormat("yaml"),
	))
	if err != nil {
		return errors.Wrapf(err, "加载配置文件%s失败", configPath)
	}

	appConfig := defaultAppConfig()
	err = config.Scan(appConfig)
	if err != nil {
		return errors.Wrap(err, "解析应用配置失败")
	}

	if err := appConfig.Workflow.validate(); err != nil {
		return err
	}

	m.config = appConfig
	return nil
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Wallet: WalletConfig{
			KeypairPath: "payer-keypair.json",
		},
		Workflow: WorkflowConfig{
			Decimals:       3,
			MintAmount:     decimal.NewFromInt(100),
			TransferAmount: decimal.NewFromInt(50),
			BurnAmount:     decimal.NewFromInt(100),
		},
	}
}

func (w WorkflowConfig) validate() error {
	if w.Decimals > 9 {
		return errors.Errorf("decimals %d超出SPL Token上限9", w.Decimals)
	}
	for name, amount := range map[string]decimal.Decimal{
		"mint_amount":     w.MintAmount,
		"transfer_amount": w.TransferAmount,
		"burn_amount":     w.BurnAmount,
	} {
		if amount.IsNegative() {
			return errors.Errorf("%s不能为负: %s", name, amount)
		}
	}
	return nil
}

// GetAppConfig 获取应用配置
func (m *Manager) GetAppConfig() *AppConfig {
	return m.config
}

// GetNetworkConfig 获取网络配置
func (m *Manager) GetNetworkConfig() NetworkConfig {
	return m.config.Network
}

// GetWalletConfig 获取钱包配置
func (m *Manager) GetWalletConfig() WalletConfig {
	return m.config.Wallet
}

// GetWorkflowConfig 获取工作流配置
func (m *Manager) GetWorkflowConfig() WorkflowConfig {
	return m.config.Workflow
}

// InitLogger 初始化日志系统
func (m *Manager) InitLogger() error {
	loggerConfig := logger.FromConfig("logger")
	loggerInstance := loggerConfig.Build()
	logger.SetDefault(loggerInstance)
	return nil
}
