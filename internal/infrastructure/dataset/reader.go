package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

// descriptor формат data.yaml; names бывает списком или словарём индекс -> имя.
type descriptor struct {
	Path  string     `yaml:"path"`
	Train string     `yaml:"train"`
	Val   string     `yaml:"val"`
	Test  string     `yaml:"test"`
	NC    *int       `yaml:"nc"`
	Names classNames `yaml:"names"`
}

type classNames []string

func (n *classNames) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*n = list
		return nil

	case yaml.MappingNode:
		var byIndex map[int]string
		if err := value.Decode(&byIndex); err != nil {
			return fmt.Errorf("names: %w", err)
		}
		indexes := make([]int, 0, len(byIndex))
		for i := range byIndex {
			indexes = append(indexes, i)
		}
		sort.Ints(indexes)
		list := make([]string, len(indexes))
		for pos, i := range indexes {
			if i != pos {
				return fmt.Errorf("class indexes must be contiguous from 0, got %d at position %d", i, pos)
			}
			list[pos] = byIndex[i]
		}
		*n = list
		return nil
	}
	return fmt.Errorf("names must be a list or a mapping")
}

// Reader читает data.yaml с диска
type Reader struct{}

// NewReader создаёт читатель описаний датасета
func NewReader() *Reader {
	return &Reader{}
}

// Read разбирает data.yaml и проверяет обязательные поля.
func (r *Reader) Read(ctx context.Context, path string) (*entity.Dataset, error) {
	_ = ctx
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entity.Error{Kind: entity.KindConfig, Op: "read dataset descriptor", Path: path, Err: err}
	}

	ds, err := parse(data)
	if err != nil {
		return nil, &entity.Error{Kind: entity.KindConfig, Op: "parse dataset descriptor", Path: path, Err: err}
	}

	// Относительный path в data.yaml считается от каталога файла
	if ds.Path == "" {
		ds.Path = filepath.Dir(path)
	} else if !filepath.IsAbs(ds.Path) {
		ds.Path = filepath.Join(filepath.Dir(path), ds.Path)
	}

	return ds, nil
}

func parse(data []byte) (*entity.Dataset, error) {
	var d descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if d.Train == "" {
		return nil, fmt.Errorf("train split is not set")
	}
	if d.Val == "" {
		return nil, fmt.Errorf("val split is not set")
	}
	if len(d.Names) == 0 {
		return nil, fmt.Errorf("names are not set")
	}
	if d.NC != nil && *d.NC != len(d.Names) {
		return nil, fmt.Errorf("nc is %d but %d names are listed", *d.NC, len(d.Names))
	}

	return &entity.Dataset{
		Path:  d.Path,
		Train: d.Train,
		Val:   d.Val,
		Test:  d.Test,
		Names: []string(d.Names),
	}, nil
}

var _ port.DatasetReader = (*Reader)(nil)
