package domain

import "time"

// Form field names as submitted by the page. They double as the
// identifiers reported in validation errors.
const (
	FieldGender            = "Gender"
	FieldMarried           = "Married"
	FieldDependents        = "Dependents"
	FieldEducation         = "Education"
	FieldSelfEmployed      = "Self_Employed"
	FieldApplicantIncome   = "ApplicantIncome"
	FieldCoapplicantIncome = "CoapplicantIncome"
	FieldLoanAmount        = "LoanAmount"
	FieldLoanAmountTerm    = "Loan_Amount_Term"
	FieldCreditHistory     = "Credit_History"
	FieldPropertyArea      = "Property_Area"
)

// FeatureCount is the width of the vector the model was trained on.
const FeatureCount = 11

// FeatureOrder is the training-time column order. Permuting it does not
// fail, it silently corrupts predictions.
var FeatureOrder = [FeatureCount]string{
	FieldGender,
	FieldMarried,
	FieldDependents,
	FieldEducation,
	FieldSelfEmployed,
	FieldApplicantIncome,
	FieldCoapplicantIncome,
	FieldLoanAmount,
	FieldLoanAmountTerm,
	FieldCreditHistory,
	FieldPropertyArea,
}

// FeatureVector is an array, not a slice, so copies never alias.
type FeatureVector [FeatureCount]float64

type PredictionResult struct {
	Approved    bool    `json:"approved"`
	Probability float64 `json:"probability"`
}

type PredictionRecord struct {
	ID        string           `json:"id"`
	Features  FeatureVector    `json:"features"`
	Result    PredictionResult `json:"result"`
	CreatedAt time.Time        `json:"created_at"`
}
