package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ninja0404/token-wizard/internal/chain"
	"github.com/ninja0404/token-wizard/internal/config"
	"github.com/ninja0404/token-wizard/internal/explorer"
	"github.com/ninja0404/token-wizard/internal/wallet"
	"github.com/ninja0404/token-wizard/internal/workflow"
	"github.com/ninja0404/token-wizard/pkg/logger"
	"github.com/ninja0404/token-wizard/pkg/utils"
)

// Application token生命周期演示应用
type Application struct {
	configManager *config.Manager
	client        *chain.Client
	runner        *workflow.Runner
	ctx           context.Context
}

// New 创建新的应用实例
func New() *Application {
	return &Application{
		configManager: config.NewManager(),
	}
}

// Start 初始化并执行完整工作流
func (app *Application) Start(configPath string) error {
	if err := app.Initialize(configPath); err != nil {
		logger.Error("❌ Token工作流初始化失败", logger.FieldErr(err))
		return err
	}

	if err := app.Run(); err != nil {
		logger.Error("❌ Token工作流执行失败", logger.FieldErr(err))
		return err
	}

	return nil
}

// Initialize 初始化应用
func (app *Application) Initialize(configPath string) error {
	// 1. 加载配置
	if err := app.configManager.Load(configPath); err != nil {
		return err
	}

	// 2. 初始化日志系统
	if err := app.configManager.InitLogger(); err != nil {
		return err
	}
	logger.Info("🚀 Token生命周期工作流初始化开始", logger.String("config_path", configPath))

	// 3. 创建链客户端
	network := app.configManager.GetNetworkConfig()
	app.client = chain.New(chain.Config{Endpoint: network.Endpoint()})
	logger.Info("🌐 链客户端已创建",
		logger.String("endpoint", network.Endpoint()),
		logger.Bool("devnet", network.Devnet))

	// 4. 加载付费钱包并保障资金
	provider := wallet.NewProvider(app.configManager.GetWalletConfig().KeypairPath)
	payer, err := provider.Obtain()
	if err != nil {
		return err
	}

	app.ctx = logger.ContextWithLog(signalContext(), logger.Named("workflow"))
	if err := provider.EnsureFunded(app.ctx, app.client, payer.PublicKey()); err != nil {
		return err
	}

	// 5. 组装工作流
	links := explorer.New(network.Devnet)
	app.runner = workflow.NewRunner(app.client, links, app.configManager.GetWorkflowConfig(), payer)
	logger.Debug("工作流配置已加载",
		logger.String("workflow", utils.ConvertToJsonString(app.configManager.GetWorkflowConfig())))

	logger.Info("✅ Token生命周期工作流初始化完成")
	return nil
}

// Run 执行工作流并关闭应用
func (app *Application) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("💥 工作流发生panic",
				logger.Any("panic", r),
				logger.FieldStack(utils.GetStack()))
			err = errors.Errorf("工作流panic: %v", r)
		}
	}()

	err = app.runner.Run(app.ctx)

	if shutdownErr := app.Shutdown(); shutdownErr != nil {
		err = multierror.Append(err, shutdownErr).ErrorOrNil()
	}
	return err
}

// Shutdown 关闭应用并刷新日志缓冲
func (app *Application) Shutdown() error {
	logger.Info("🛑 工作流结束，关闭应用")
	logger.Close()
	return nil
}

// signalContext 返回收到SIGINT/SIGTERM时取消的context
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logger.Info("📤 收到终止信号，中止工作流", logger.String("signal", sig.String()))
		cancel()
	}()
	return ctx
}
