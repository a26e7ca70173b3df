package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tenancy/pkg/rbac"
	"github.com/dmitrymomot/tenancy/pkg/slug"
)

//go:embed default.yaml
var defaultCatalog []byte

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Config points at an override file; empty means the embedded default.
type Config struct {
	Path string `env:"TENANCY_CATALOG_PATH"`
}

type SlugSettings struct {
	MinLength int    `yaml:"min_length"`
	MaxLength int    `yaml:"max_length"`
	Pattern   string `yaml:"pattern"`
}

// TenantType is one selectable tenant category.
type TenantType struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

type Defaults struct {
	PrimaryColor string `yaml:"primary_color"`
	Type         string `yaml:"type"`
}

// Catalog is the static tenancy configuration shared by registration,
// slug validation and authorization.
type Catalog struct {
	ReservedSlugs  []string             `yaml:"reserved_slugs"`
	Slug           SlugSettings         `yaml:"slug"`
	Types          []TenantType         `yaml:"types"`
	Defaults       Defaults             `yaml:"defaults"`
	SuperAdminRole string               `yaml:"super_admin_role"`
	RegistrantRole string               `yaml:"registrant_role"`
	HiddenRoles    []string             `yaml:"hidden_roles"`
	Roles          map[string]rbac.Role `yaml:"roles"`

	rules slug.Rules
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads the file named by cfg.Path, or the embedded catalog when unset.
func Load(cfg Config) (*Catalog, error) {
	if cfg.Path == "" {
		return Default()
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	rules, err := slug.NewRules(c.Slug.MinLength, c.Slug.MaxLength, c.Slug.Pattern, c.ReservedSlugs)
	if err != nil {
		return errors.Join(ErrInvalid, err)
	}
	c.rules = rules

	if len(c.Types) == 0 {
		return fmt.Errorf("%w: no tenant types", ErrInvalid)
	}
	if !c.HasType(c.Defaults.Type) {
		return fmt.Errorf("%w: default type %q is not a tenant type", ErrInvalid, c.Defaults.Type)
	}
	if !hexColor.MatchString(c.Defaults.PrimaryColor) {
		return fmt.Errorf("%w: default color %q is not #rrggbb", ErrInvalid, c.Defaults.PrimaryColor)
	}

	for _, role := range append([]string{c.SuperAdminRole, c.RegistrantRole}, c.HiddenRoles...) {
		if _, ok := c.Roles[role]; !ok {
			return fmt.Errorf("%w: role %q is not defined", ErrInvalid, role)
		}
	}
	return nil
}

// SlugRules returns the compiled slug rules.
func (c *Catalog) SlugRules() slug.Rules {
	return c.rules
}

// RoleSource feeds the catalog roles to rbac.NewAuthorizer.
func (c *Catalog) RoleSource() rbac.RoleSource {
	return rbac.NewStaticRoleSource(c.Roles)
}

func (c *Catalog) HasType(key string) bool {
	return slices.ContainsFunc(c.Types, func(t TenantType) bool { return t.Key == key })
}

// TypeKeys lists tenant type keys in catalog order.
func (c *Catalog) TypeKeys() []string {
	keys := make([]string, 0, len(c.Types))
	for _, t := range c.Types {
		keys = append(keys, t.Key)
	}
	return keys
}

// ValidColor reports whether color is a #rrggbb value.
func ValidColor(color string) bool {
	return hexColor.MatchString(color)
}
