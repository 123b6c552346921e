package models

type Workload string

const (
	WorkloadBIReporting      Workload = "bi_reporting"
	WorkloadELTSQL           Workload = "elt_sql_analytics"
	WorkloadDataScienceML    Workload = "data_science_ml"
	WorkloadStreamingBatchML Workload = "streaming_batch_ml"
	WorkloadLakehouse        Workload = "lakehouse"
)

var Workloads = []Workload{
	WorkloadBIReporting,
	WorkloadELTSQL,
	WorkloadDataScienceML,
	WorkloadStreamingBatchML,
	WorkloadLakehouse,
}

type DataType string

const (
	DataStructured     DataType = "structured"
	DataSemiStructured DataType = "semi_structured"
	DataUnstructured   DataType = "unstructured"
	DataStreaming      DataType = "streaming"
)

var DataTypes = []DataType{DataStructured, DataSemiStructured, DataUnstructured, DataStreaming}

type TeamSkill string

const (
	SkillSQLFirst      TeamSkill = "sql_first"
	SkillNotebooks     TeamSkill = "python_scala_notebooks"
	SkillMLEngineering TeamSkill = "ml_engineering"
)

var TeamSkills = []TeamSkill{SkillSQLFirst, SkillNotebooks, SkillMLEngineering}

type BudgetPosture string

const (
	BudgetTight    BudgetPosture = "tight"
	BudgetFlexible BudgetPosture = "flexible"
)

var BudgetPostures = []BudgetPosture{BudgetTight, BudgetFlexible}

func ParseWorkload(s string) (Workload, error) { return parseEnum("workload", s, Workloads) }

func ParseDataType(s string) (DataType, error) { return parseEnum("data type", s, DataTypes) }

func ParseTeamSkill(s string) (TeamSkill, error) { return parseEnum("team skill", s, TeamSkills) }

func ParseBudgetPosture(s string) (BudgetPosture, error) {
	return parseEnum("budget posture", s, BudgetPostures)
}

// PlatformLeaning is the platform-fit verdict.
type PlatformLeaning string

const (
	LeanSnowflake  PlatformLeaning = "Snowflake leaning"
	LeanDatabricks PlatformLeaning = "Databricks leaning"
	LeanEither     PlatformLeaning = "Either fits"
)

type PlatformFit struct {
	Label           PlatformLeaning     `json:"label"`
	SnowflakeScore  int                 `json:"snowflake_score"`
	DatabricksScore int                 `json:"databricks_score"`
	SnowflakeRatio  float64             `json:"snowflake_ratio"`
	DatabricksRatio float64             `json:"databricks_ratio"`
	Note            string              `json:"note,omitempty"`
	Strengths       map[string][]string `json:"strengths"`
}
