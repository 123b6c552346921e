// Package platform scores a data workload against Snowflake and Databricks.
package platform

import (
	"math"

	"CloudLab/internal/domain/models"
)

// maxScore is the best score one platform can reach across the four answers.
const maxScore = 6

type points struct {
	snowflake  int
	databricks int
}

var workloadPoints = map[models.Workload]points{
	models.WorkloadBIReporting:      {snowflake: 2},
	models.WorkloadELTSQL:           {snowflake: 2},
	models.WorkloadDataScienceML:    {databricks: 2},
	models.WorkloadStreamingBatchML: {databricks: 2},
	models.WorkloadLakehouse:        {databricks: 2},
}

var dataTypePoints = map[models.DataType]points{
	models.DataStructured:     {snowflake: 1},
	models.DataSemiStructured: {snowflake: 1},
	models.DataUnstructured:   {databricks: 1},
	models.DataStreaming:      {databricks: 1},
}

var skillPoints = map[models.TeamSkill]points{
	models.SkillSQLFirst:      {snowflake: 2},
	models.SkillNotebooks:     {databricks: 2},
	models.SkillMLEngineering: {databricks: 2},
}

var budgetPoints = map[models.BudgetPosture]points{
	models.BudgetTight:    {snowflake: 1, databricks: 1},
	models.BudgetFlexible: {},
}

var strengths = map[string][]string{
	"snowflake": {
		"Elastic cloud DW (compute/storage separation), strong SQL UX",
		"Snowpark for Python/Java/Scala; secure data sharing/collaboration",
		"Cross-cloud, governance features; growing Iceberg/unistore patterns",
	},
	"databricks": {
		"Lakehouse (Delta) unifies BI + ML; strong notebooks & MLflow",
		"Streaming + batch on open formats (Delta/Parquet/Iceberg)",
		"Unity Catalog for governance; Photon engine for fast SQL",
	},
}

const tieNote = "depends on governance & ecosystem"

// ScorePlatformFit adds up the association points of each answer.
func ScorePlatformFit(w models.Workload, dt models.DataType, skill models.TeamSkill, budget models.BudgetPosture) (models.PlatformFit, error) {
	var fit models.PlatformFit

	wp, ok := workloadPoints[w]
	if !ok {
		return fit, &models.CategoryError{Kind: "workload", Value: string(w)}
	}
	dp, ok := dataTypePoints[dt]
	if !ok {
		return fit, &models.CategoryError{Kind: "data type", Value: string(dt)}
	}
	sp, ok := skillPoints[skill]
	if !ok {
		return fit, &models.CategoryError{Kind: "team skill", Value: string(skill)}
	}
	bp, ok := budgetPoints[budget]
	if !ok {
		return fit, &models.CategoryError{Kind: "budget posture", Value: string(budget)}
	}

	for _, p := range []points{wp, dp, sp, bp} {
		fit.SnowflakeScore += p.snowflake
		fit.DatabricksScore += p.databricks
	}

	switch {
	case fit.SnowflakeScore > fit.DatabricksScore:
		fit.Label = models.LeanSnowflake
	case fit.DatabricksScore > fit.SnowflakeScore:
		fit.Label = models.LeanDatabricks
	default:
		fit.Label = models.LeanEither
		fit.Note = tieNote
	}

	fit.SnowflakeRatio = ratio(fit.SnowflakeScore)
	fit.DatabricksRatio = ratio(fit.DatabricksScore)
	fit.Strengths = map[string][]string{
		"snowflake":  append([]string(nil), strengths["snowflake"]...),
		"databricks": append([]string(nil), strengths["databricks"]...),
	}
	return fit, nil
}

func ratio(score int) float64 {
	return math.Min(1, float64(score)/maxScore)
}
