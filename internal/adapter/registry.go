package adapter

import (
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// PlatformRegistry 按配置实例化的适配器注册表
// order 保留配置里 enabled_platforms 的顺序：同步合并时该顺序即来源优先级
type PlatformRegistry struct {
	cfg      *config.Config
	logger   *logrus.Logger
	adapters map[string]interfaces.ContestAdapter
	order    []string
}

func NewPlatformRegistry(cfg *config.Config, logger *logrus.Logger) *PlatformRegistry {
	r := &PlatformRegistry{
		cfg:      cfg,
		logger:   logger,
		adapters: make(map[string]interfaces.ContestAdapter),
	}
	r.initAdaptersFromFactories()
	return r
}

// initAdaptersFromFactories 从工厂函数注册表初始化适配器实例
func (r *PlatformRegistry) initAdaptersFromFactories() {
	r.logger.WithField("factory_platforms", ListFactories()).Info("已注册的适配器工厂")

	for _, platform := range r.cfg.Sync.EnabledPlatforms {
		factory, ok := GetFactory(platform)
		if !ok {
			r.logger.WithField("platform", platform).Error("未找到对应的工厂函数（init未注册？）")
			continue
		}

		platformCfg, ok := r.cfg.Platforms[platform]
		if !ok {
			r.logger.WithField("platform", platform).Error("配置缺少该平台，跳过")
			continue
		}

		adapterIns := factory(&platformCfg, r.logger)
		if adapterIns == nil {
			r.logger.WithField("platform", platform).Error("工厂函数返回nil适配器实例")
			continue
		}

		r.adapters[platform] = adapterIns
		r.order = append(r.order, platform)
		r.logger.WithField("platform", platform).Info("适配器实例初始化成功并加入注册表")
	}

	r.logger.WithField("instance_platforms", len(r.adapters)).Info("最终初始化的适配器实例数量")
}

// Adapters 按配置顺序返回所有适配器实例（顺序即合并优先级）
func (r *PlatformRegistry) Adapters() []interfaces.ContestAdapter {
	list := make([]interfaces.ContestAdapter, 0, len(r.order))
	for _, p := range r.order {
		list = append(list, r.adapters[p])
	}
	return list
}

// GetPlatformCount 获取已初始化实例的平台数量
func (r *PlatformRegistry) GetPlatformCount() int {
	return len(r.adapters)
}
