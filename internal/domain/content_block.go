package domain

import "time"

type BlockType string

const (
	BlockLatest   BlockType = "LATEST"
	BlockPopular  BlockType = "POPULAR"
	BlockFeatured BlockType = "FEATURED"
	BlockCategory BlockType = "CATEGORY"
)

var BlockTypes = []BlockType{BlockLatest, BlockPopular, BlockFeatured, BlockCategory}

func (t BlockType) Valid() bool {
	for _, x := range BlockTypes {
		if t == x {
			return true
		}
	}
	return false
}

// BlockConfig is the per-type settings of a homepage block. CategoryID is
// only meaningful for CATEGORY blocks.
type BlockConfig struct {
	Limit      int    `json:"limit,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
}

type ContentBlock struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Type      BlockType    `json:"type"`
	Order     int          `json:"order"`
	IsVisible bool         `json:"isVisible"`
	Config    *BlockConfig `json:"config,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

const DefaultBlockLimit = 10

func (b ContentBlock) Limit() int {
	if b.Config == nil || b.Config.Limit <= 0 {
		return DefaultBlockLimit
	}
	return b.Config.Limit
}

func (b ContentBlock) CategoryID() string {
	if b.Config == nil {
		return ""
	}
	return b.Config.CategoryID
}
