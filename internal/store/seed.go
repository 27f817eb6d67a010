package store

import "github.com/pulseline/scribe/internal/matcher"

func pf(v float64) *float64 { return &v }

// DefaultParamTargets is the built-in starter corpus, written once when
// param_targets is empty. It deliberately carries only the ~40 most common
// measurements of the full clinical reference set (~200 codes); the rest are
// deployment-specific and arrive through operator upsert. Nothing in the
// pipeline ever deletes from it.
var DefaultParamTargets = []matcher.ParamTarget{
	{Code: "GLU_FAST", TargetMin: pf(70), TargetMax: pf(100), PreferredUnit: "mg/dL",
		Description: "Fasting blood glucose", Notes: "measured before breakfast after an overnight fast", OrganSystem: "metabolic"},
	{Code: "GLU_PP", TargetMin: pf(70), TargetMax: pf(140), PreferredUnit: "mg/dL",
		Description: "Postprandial blood glucose", Notes: "measured two hours after a meal", OrganSystem: "metabolic"},
	{Code: "GLU_RANDOM", TargetMin: pf(70), TargetMax: pf(140), PreferredUnit: "mg/dL",
		Description: "Random blood glucose sugar", Notes: "spot check at any time of day", OrganSystem: "metabolic"},
	{Code: "HBA1C", TargetMin: pf(4), TargetMax: pf(5.7), PreferredUnit: "%",
		Description: "Glycated hemoglobin hba1c", Notes: "three month average glucose marker", OrganSystem: "metabolic"},
	{Code: "BP_SYS", TargetMin: pf(90), TargetMax: pf(120), PreferredUnit: "mmHg",
		Description: "Systolic blood pressure bloodpressure upper", OrganSystem: "cardiovascular"},
	{Code: "BP_DIA", TargetMin: pf(60), TargetMax: pf(80), PreferredUnit: "mmHg",
		Description: "Diastolic blood pressure bloodpressure lower", OrganSystem: "cardiovascular"},
	{Code: "HEART_RATE", TargetMin: pf(60), TargetMax: pf(100), PreferredUnit: "bpm",
		Description: "Resting heart rate pulse", OrganSystem: "cardiovascular"},
	{Code: "SPO2", TargetMin: pf(95), TargetMax: pf(100), PreferredUnit: "%",
		Description: "Blood oxygen saturation spo2", OrganSystem: "respiratory"},
	{Code: "TEMP_BODY", TargetMin: pf(36.1), TargetMax: pf(37.2), PreferredUnit: "°C",
		Description: "Body temperature fever", OrganSystem: "general"},
	{Code: "WEIGHT", PreferredUnit: "kg",
		Description: "Body weight", Notes: "target depends on height and build", OrganSystem: "general"},
	{Code: "BMI", TargetMin: pf(18.5), TargetMax: pf(24.9), PreferredUnit: "kg/m2",
		Description: "Body mass index", OrganSystem: "general"},
	{Code: "STEPS_DAILY", TargetMin: pf(7000), TargetMax: pf(12000), PreferredUnit: "steps",
		Description: "Daily step count walking", OrganSystem: "activity"},
	{Code: "CHOL_TOTAL", TargetMin: pf(125), TargetMax: pf(200), PreferredUnit: "mg/dL",
		Description: "Total cholesterol", OrganSystem: "cardiovascular"},
	{Code: "LDL", TargetMin: pf(0), TargetMax: pf(100), PreferredUnit: "mg/dL",
		Description: "LDL cholesterol low density lipoprotein bad", OrganSystem: "cardiovascular"},
	{Code: "HDL", TargetMin: pf(40), TargetMax: pf(100), PreferredUnit: "mg/dL",
		Description: "HDL cholesterol high density lipoprotein good", OrganSystem: "cardiovascular"},
	{Code: "TRIGLYCERIDES", TargetMin: pf(0), TargetMax: pf(150), PreferredUnit: "mg/dL",
		Description: "Triglycerides blood fat", OrganSystem: "cardiovascular"},
	{Code: "TSH", TargetMin: pf(0.4), TargetMax: pf(4.0), PreferredUnit: "mIU/L",
		Description: "Thyroid stimulating hormone", OrganSystem: "endocrine"},
	{Code: "T3_FREE", TargetMin: pf(2.3), TargetMax: pf(4.2), PreferredUnit: "pg/mL",
		Description: "Free T3 triiodothyronine thyroid", OrganSystem: "endocrine"},
	{Code: "T4_FREE", TargetMin: pf(0.8), TargetMax: pf(1.8), PreferredUnit: "ng/dL",
		Description: "Free T4 thyroxine thyroid", OrganSystem: "endocrine"},
	{Code: "CREATININE", TargetMin: pf(0.6), TargetMax: pf(1.3), PreferredUnit: "mg/dL",
		Description: "Serum creatinine kidney", OrganSystem: "renal"},
	{Code: "EGFR", TargetMin: pf(90), TargetMax: pf(120), PreferredUnit: "mL/min",
		Description: "Estimated glomerular filtration rate kidney egfr", OrganSystem: "renal"},
	{Code: "UREA", TargetMin: pf(7), TargetMax: pf(20), PreferredUnit: "mg/dL",
		Description: "Blood urea nitrogen bun kidney", OrganSystem: "renal"},
	{Code: "URIC_ACID", TargetMin: pf(3.5), TargetMax: pf(7.2), PreferredUnit: "mg/dL",
		Description: "Uric acid gout", OrganSystem: "renal"},
	{Code: "ALT", TargetMin: pf(7), TargetMax: pf(56), PreferredUnit: "U/L",
		Description: "Alanine aminotransferase sgpt liver enzyme", OrganSystem: "hepatic"},
	{Code: "AST", TargetMin: pf(10), TargetMax: pf(40), PreferredUnit: "U/L",
		Description: "Aspartate aminotransferase sgot liver enzyme", OrganSystem: "hepatic"},
	{Code: "BILIRUBIN_TOTAL", TargetMin: pf(0.1), TargetMax: pf(1.2), PreferredUnit: "mg/dL",
		Description: "Total bilirubin liver jaundice", OrganSystem: "hepatic"},
	{Code: "ALBUMIN", TargetMin: pf(3.4), TargetMax: pf(5.4), PreferredUnit: "g/dL",
		Description: "Serum albumin protein liver", OrganSystem: "hepatic"},
	{Code: "HEMOGLOBIN", TargetMin: pf(12), TargetMax: pf(17.5), PreferredUnit: "g/dL",
		Description: "Hemoglobin anemia blood", OrganSystem: "hematology"},
	{Code: "WBC", TargetMin: pf(4.5), TargetMax: pf(11), PreferredUnit: "10^3/uL",
		Description: "White blood cell count infection", OrganSystem: "hematology"},
	{Code: "PLATELETS", TargetMin: pf(150), TargetMax: pf(450), PreferredUnit: "10^3/uL",
		Description: "Platelet count clotting", OrganSystem: "hematology"},
	{Code: "FERRITIN", TargetMin: pf(20), TargetMax: pf(250), PreferredUnit: "ng/mL",
		Description: "Ferritin iron stores", OrganSystem: "hematology"},
	{Code: "VITAMIN_D", TargetMin: pf(30), TargetMax: pf(100), PreferredUnit: "ng/mL",
		Description: "Vitamin D 25-hydroxy", OrganSystem: "endocrine"},
	{Code: "VITAMIN_B12", TargetMin: pf(200), TargetMax: pf(900), PreferredUnit: "pg/mL",
		Description: "Vitamin B12 cobalamin", OrganSystem: "hematology"},
	{Code: "SODIUM", TargetMin: pf(135), TargetMax: pf(145), PreferredUnit: "mEq/L",
		Description: "Serum sodium electrolyte", OrganSystem: "renal"},
	{Code: "POTASSIUM", TargetMin: pf(3.5), TargetMax: pf(5.2), PreferredUnit: "mEq/L",
		Description: "Serum potassium electrolyte", OrganSystem: "renal"},
	{Code: "CALCIUM", TargetMin: pf(8.5), TargetMax: pf(10.5), PreferredUnit: "mg/dL",
		Description: "Serum calcium bone", OrganSystem: "endocrine"},
	{Code: "CRP", TargetMin: pf(0), TargetMax: pf(3), PreferredUnit: "mg/L",
		Description: "C-reactive protein inflammation", OrganSystem: "immune"},
	{Code: "ESR", TargetMin: pf(0), TargetMax: pf(20), PreferredUnit: "mm/hr",
		Description: "Erythrocyte sedimentation rate inflammation", OrganSystem: "immune"},
	{Code: "SLEEP_HOURS", TargetMin: pf(7), TargetMax: pf(9), PreferredUnit: "hours",
		Description: "Nightly sleep duration", OrganSystem: "general"},
	{Code: "WAIST_CIRC", TargetMin: pf(0), TargetMax: pf(94), PreferredUnit: "cm",
		Description: "Waist circumference abdominal", OrganSystem: "general"},
}
