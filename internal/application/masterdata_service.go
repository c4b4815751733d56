package application

import "github.com/ysakata/member-api/internal/domain/entity"

// EnumItem is a value/label pair served to clients for select inputs.
type EnumItem struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type MasterData struct {
	Genders []EnumItem `json:"genders"`
}

// GetMasterData returns the display enumerations.
func GetMasterData() MasterData {
	genders := make([]EnumItem, 0, len(entity.Genders()))
	for _, g := range entity.Genders() {
		genders = append(genders, EnumItem{Value: int(g), Label: g.Label()})
	}
	return MasterData{Genders: genders}
}
