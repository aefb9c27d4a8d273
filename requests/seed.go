package requests

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/filecab/filecab"
	"github.com/filecab/filecab/catalog"
	"github.com/filecab/filecab/internal/util"
)

// SeedNode is one entry in a seed definitions file: a folder or file to
// create at startup. Entries apply in file order, so parents must appear
// before their children.
type SeedNode struct {
	Type       filecab.NodeType `json:"type"`
	ParentPath string           `json:"parent_path"`
	Name       string           `json:"name"`
	Author     string           `json:"author,omitempty"`
	FileType   string           `json:"file_type,omitempty"`
	Tags       string           `json:"tags,omitempty"`
}

func (n SeedNode) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Type, validation.Required,
			validation.In(filecab.FolderType, filecab.FileType)),
		validation.Field(&n.ParentPath, validation.Required),
		validation.Field(&n.Name, validation.Required, validation.By(noSlash)),
	)
}

// ParseSeed decodes a seed file: a JSON array of SeedNode definitions.
func ParseSeed(data []byte) ([]SeedNode, error) {
	var nodes []SeedNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// ApplySeed replays seed definitions onto the catalog in file order,
// skipping entries that fail validation or application so one bad
// definition does not sink the rest. It returns how many folders and files
// were created.
func ApplySeed(cat *catalog.Catalog, nodes []SeedNode) (folders, files int) {
	logger := util.GetLogger("seed")
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			logger.Error().Err(err).Str("name", n.Name).Msg("Invalid seed entry")
			continue
		}
		switch n.Type {
		case filecab.FolderType:
			if err := cat.CreateFolder(n.ParentPath, n.Name); err != nil {
				logger.Debug().Err(err).Str("name", n.Name).Msg("Failed to seed folder")
				continue
			}
			folders++
		case filecab.FileType:
			meta := catalog.FileMeta{
				Author:   n.Author,
				FileType: n.FileType,
				Tags:     SplitTags(n.Tags),
			}
			if err := cat.AddFile(n.ParentPath, n.Name, meta); err != nil {
				logger.Debug().Err(err).Str("name", n.Name).Msg("Failed to seed file")
				continue
			}
			files++
		}
	}
	return folders, files
}
