// internal/adapter/registry.go
package adapter

import (
	"fmt"
	"sort"

	"ParlaySync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表 ==========
var factoryRegistry = make(map[string]interfaces.Factory)

// Register 供数据源 init 函数调用，注册工厂函数
func Register(provider string, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("数据源%s的工厂函数不能为nil", provider))
	}
	if _, exists := factoryRegistry[provider]; exists {
		logrus.Warnf("数据源%s已注册，将覆盖原有实现", provider)
	}
	factoryRegistry[provider] = factory
}

// GetFactory 获取指定数据源的工厂函数
func GetFactory(provider string) (interfaces.Factory, bool) {
	factory, ok := factoryRegistry[provider]
	return factory, ok
}

// ListFactories 列出所有已注册的数据源（已排序）
func ListFactories() []string {
	providers := make([]string, 0, len(factoryRegistry))
	for p := range factoryRegistry {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}
