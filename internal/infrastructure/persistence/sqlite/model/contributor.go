package model

type Contributor struct {
	ContributorID uint64 `gorm:"column:contributor_id;primaryKey;autoIncrement"`
	Provider      string `gorm:"column:provider;type:text;not null;uniqueIndex:idx_contributors_provider_email"`
	Email         string `gorm:"column:email;type:text;not null;uniqueIndex:idx_contributors_provider_email"`
	Name          string `gorm:"column:name;type:text;not null;default:''"`
	AvatarURL     string `gorm:"column:avatar_url;type:text;not null;default:''"`
}

func (Contributor) TableName() string {
	return "contributors"
}
