package json

import (
	"os"
	"regexp"
	"strings"
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// ReplaceEnvVars 将配置中的 ${VAR} 占位符替换为环境变量值
func ReplaceEnvVars(raw []byte) ([]byte, error) {
	if !envVarRe.Match(raw) {
		return raw, nil
	}
	res := envVarRe.ReplaceAllStringFunc(string(raw), replaceEnvVar)
	return []byte(res), nil
}

func replaceEnvVar(element string) string {
	v := strings.TrimSuffix(strings.TrimPrefix(element, "${"), "}")
	return os.Getenv(v)
}
