package yamlbatch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	batchesDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{batchesDir: "batches"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithBatchesDir(dir string) Option {
	return func(l *Loader) { l.batchesDir = dir }
}

var _ ports.BatchLoader = (*Loader)(nil)

func (l *Loader) LoadBatch(path string) (domain.Batch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Batch{}, &domain.OpError{
			Op:   "yamlbatch.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yb yamlBatch
	if err := yaml.Unmarshal(b, &yb); err != nil {
		return domain.Batch{}, &domain.OpError{
			Op:   "yamlbatch.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yb)
}

func (l *Loader) ListBatches(root string) ([]domain.BatchRef, error) {
	dir := filepath.Join(root, l.batchesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlbatch.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.BatchRef
	for _, e := range entries {
		if e.IsDir() || !hasYAMLExt(e.Name()) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		n, _ := readBatchName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}

		refs = append(refs, domain.BatchRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func hasYAMLExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func readBatchName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlBatch struct {
	Name      string     `yaml:"name"`
	Direction string     `yaml:"direction"`
	Items     []yamlItem `yaml:"items"`
}

// yamlItem is either a bare scalar ("- XIV", "- 14") or a mapping with
// input/expect/expect_error/direction keys. Values are kept as raw scalar
// text so "14" and 14 read the same.
type yamlItem struct {
	Input       string
	Expect      *string
	ExpectError string
	Direction   string

	hasInput bool
	unknown  []string
}

func (it *yamlItem) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		it.Input = n.Value
		it.hasInput = true
		return nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: %s must be a scalar", v.Line, k.Value)
			}
			switch k.Value {
			case "input":
				it.Input = v.Value
				it.hasInput = true
			case "expect":
				s := v.Value
				it.Expect = &s
			case "expect_error":
				it.ExpectError = v.Value
			case "direction":
				it.Direction = v.Value
			default:
				it.unknown = append(it.unknown, k.Value)
			}
		}
		return nil

	default:
		return fmt.Errorf("line %d: item must be a scalar or a mapping", n.Line)
	}
}

func mapAndValidate(path string, yb yamlBatch) (domain.Batch, error) {
	name := strings.TrimSpace(yb.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	dir, err := domain.ParseDirection(yb.Direction)
	if err != nil {
		return domain.Batch{}, invalidField(path, "direction", err.Error())
	}

	if len(yb.Items) == 0 {
		return domain.Batch{}, invalidField(path, "items", "at least one item is required")
	}

	b := domain.Batch{
		Name:      name,
		Direction: dir,
		Items:     make([]domain.BatchItem, 0, len(yb.Items)),
	}

	for i, it := range yb.Items {
		prefix := fmt.Sprintf("items[%d]", i)

		if len(it.unknown) > 0 {
			return domain.Batch{}, invalidField(path, prefix, fmt.Sprintf("unknown keys %v", it.unknown))
		}

		if !it.hasInput {
			return domain.Batch{}, invalidField(path, prefix+".input", "required")
		}

		item := domain.BatchItem{Input: it.Input, Expect: it.Expect}

		if strings.TrimSpace(it.Direction) != "" {
			d, err := domain.ParseDirection(it.Direction)
			if err != nil {
				return domain.Batch{}, invalidField(path, prefix+".direction", err.Error())
			}
			item.Direction = d
		}

		if k := domain.ErrorKind(strings.TrimSpace(it.ExpectError)); k != "" {
			if !k.IsInputKind() {
				return domain.Batch{}, invalidField(path, prefix+".expect_error",
					fmt.Sprintf("unsupported kind %q (expected out_of_range|unrecognized_symbol|non_canonical)", k))
			}
			item.ExpectError = k
		}

		b.Items = append(b.Items, item)
	}

	return b, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlbatch.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
