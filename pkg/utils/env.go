package utils

import (
	"os"
)

const (
	CONFIG_FILE_PATH string = "CONFIG_FILE_PATH"
)

// GetConfigFilePath 从环境变量读取配置文件路径覆盖
func GetConfigFilePath() string {
	return os.Getenv(CONFIG_FILE_PATH)
}
