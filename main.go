package main

import (
	"fmt"
	"os"

	"github.com/ninja0404/token-wizard/internal/app"
	"github.com/ninja0404/token-wizard/pkg/utils"
)

func main() {
	configPath := "./config/config.yaml"
	if envPath := utils.GetConfigFilePath(); envPath != "" {
		configPath = envPath
	}
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// 创建应用实例
	application := app.New()

	// 启动应用并执行完整token生命周期工作流
	if err := application.Start(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "token工作流执行失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ token生命周期工作流执行成功")
}
