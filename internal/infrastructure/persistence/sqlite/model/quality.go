package model

import "time"

type QualityScan struct {
	QualityScanID   uint64    `gorm:"column:quality_scan_id;primaryKey;autoIncrement"`
	RepositoryID    uint64    `gorm:"column:repository_id;not null;index"`
	Coverage        *float64  `gorm:"column:coverage"`
	NewCodeCoverage *float64  `gorm:"column:new_code_coverage"`
	Bugs            int       `gorm:"column:bugs;not null;default:0"`
	CodeSmells      int       `gorm:"column:code_smells;not null;default:0"`
	ScannedAt       time.Time `gorm:"column:scanned_at;not null;index"`
}

func (QualityScan) TableName() string {
	return "quality_scans"
}

type SecurityVulnerability struct {
	VulnerabilityID uint64    `gorm:"column:vulnerability_id;primaryKey;autoIncrement"`
	RepositoryID    uint64    `gorm:"column:repository_id;not null;uniqueIndex:idx_vulns_repo_cve;index"`
	CVEID           string    `gorm:"column:cve_id;type:text;not null;uniqueIndex:idx_vulns_repo_cve"`
	Severity        string    `gorm:"column:severity;type:text;not null"`
	Status          string    `gorm:"column:status;type:text;not null;default:'OPEN'"`
	DetectedAt      time.Time `gorm:"column:detected_at;not null;index"`
}

func (SecurityVulnerability) TableName() string {
	return "security_vulnerabilities"
}
