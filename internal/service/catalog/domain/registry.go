package domain

import (
	"github.com/pkg/errors"
)

// ErrFactoryNotRegistered 表示品类编码没有对应的工厂。
var ErrFactoryNotRegistered = errors.New("catalog: factory not registered")

// Registry 按品类编码登记工厂族。
// 非并发安全：预期在启动期注册完毕，之后只读。
type Registry struct {
	factories map[string]FamilyFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]FamilyFactory)}
}

// Register 登记一个品类工厂，重复注册时后者覆盖前者。
func (r *Registry) Register(code string, f FamilyFactory) {
	r.factories[code] = f
}

// Factory 按品类编码取工厂。
func (r *Registry) Factory(code string) (FamilyFactory, error) {
	f, ok := r.factories[code]
	if !ok {
		return nil, errors.Wrapf(ErrFactoryNotRegistered, "code %q", code)
	}
	return f, nil
}

// DefaultRegistry 返回登记了全部内置品类的注册表。
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(string(KindElectronics), ElectronicsFamilyFactory{})
	r.Register(string(KindClothing), ClothingFamilyFactory{})
	r.Register(string(KindBook), BookFamilyFactory{})
	return r
}
