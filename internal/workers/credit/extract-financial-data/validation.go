// internal/workers/credit/extract-financial-data/validation.go
package extractfinancialdata

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"kyp-credit-workers/internal/common/errors"
	"kyp-credit-workers/internal/models"
)

// validate runs the structural checks in a fixed order so the first failure
// reported is always deterministic for a given document.
func validate(input *Input) *errors.StandardError {
	if err := validateSections(input); err != nil {
		return err
	}
	if err := validateCompany(input.Company); err != nil {
		return err
	}
	if err := validateReceivablePresence(input.Receivable); err != nil {
		return err
	}
	if _, err := normalizeTaxID(*input.Company.TaxID); err != nil {
		return err
	}
	if err := validateDueDate(*input.Receivable.DueDate); err != nil {
		return err
	}
	return validateAmounts(input)
}

func validateSections(input *Input) *errors.StandardError {
	var missing []string
	if input.Company == nil {
		missing = append(missing, "company")
	}
	if input.Receivable == nil {
		missing = append(missing, "receivable")
	}
	if input.Financial == nil {
		missing = append(missing, "financial")
	}
	if len(missing) > 0 {
		return errors.NewValidationError(errors.ErrCodeMissingSection,
			fmt.Sprintf("required sections missing: %s", strings.Join(missing, ", ")),
			missing)
	}
	return nil
}

func validateCompany(company *CompanySection) *errors.StandardError {
	var missing []string
	if company.TaxID == nil || *company.TaxID == "" {
		missing = append(missing, "company.tax_id")
	}
	if company.LegalName == nil || *company.LegalName == "" {
		missing = append(missing, "company.legal_name")
	}
	if company.Sector == nil || *company.Sector == "" {
		missing = append(missing, "company.sector")
	}
	if len(missing) > 0 {
		return errors.NewValidationError(errors.ErrCodeMissingSection,
			fmt.Sprintf("company section incomplete: %s", strings.Join(missing, ", ")),
			missing)
	}
	return nil
}

func validateReceivablePresence(receivable *ReceivableSection) *errors.StandardError {
	var missing []string
	if receivable.Amount == nil {
		missing = append(missing, "receivable.amount")
	}
	if receivable.DueDate == nil {
		missing = append(missing, "receivable.due_date")
	}
	if len(missing) > 0 {
		return errors.NewValidationError(errors.ErrCodeMissingSection,
			fmt.Sprintf("receivable section incomplete: %s", strings.Join(missing, ", ")),
			missing)
	}
	return nil
}

// normalizeTaxID strips the usual CNPJ formatting characters and requires
// exactly 14 digits.
func normalizeTaxID(raw string) (string, *errors.StandardError) {
	cleaned := strings.NewReplacer(".", "", "/", "", "-", "", " ", "").Replace(raw)
	if len(cleaned) != 14 || !isAllDigits(cleaned) {
		return "", errors.NewValidationError(errors.ErrCodeInvalidTaxID,
			fmt.Sprintf("tax id format invalid: %s", raw),
			[]string{"company.tax_id"})
	}
	return cleaned, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func validateDueDate(raw string) *errors.StandardError {
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidDate,
			fmt.Sprintf("due date must be an ISO-8601 calendar date (YYYY-MM-DD), got: %s", raw),
			[]string{"receivable.due_date"})
	}
	return nil
}

// validateAmounts enforces sign constraints. Net profit, operating profit and
// equity are legitimately negative; everything else feeding a ratio must be
// non-negative, and the receivable amount must be strictly positive.
func validateAmounts(input *Input) *errors.StandardError {
	var invalid []string

	if *input.Receivable.Amount <= 0 {
		invalid = append(invalid, "receivable.amount")
	}

	if bs := input.Financial.BalanceSheet; bs != nil {
		invalid = append(invalid, negativeFields("balance_sheet", map[string]*float64{
			"current_assets":          bs.CurrentAssets,
			"non_current_assets":      bs.NonCurrentAssets,
			"current_liabilities":     bs.CurrentLiabilities,
			"non_current_liabilities": bs.NonCurrentLiabilities,
		})...)
	}
	if is := input.Financial.IncomeStatement; is != nil {
		invalid = append(invalid, negativeFields("income_statement", map[string]*float64{
			"gross_revenue": is.GrossRevenue,
			"net_revenue":   is.NetRevenue,
			"gross_profit":  is.GrossProfit,
			"ebitda":        is.EBITDA,
		})...)
	}
	for i, entry := range input.Financial.PaymentHistory {
		if entry.Amount != nil && *entry.Amount < 0 {
			invalid = append(invalid, fmt.Sprintf("payment_history[%d].amount", i))
		}
	}

	if len(invalid) > 0 {
		return errors.NewValidationError(errors.ErrCodeInvalidValue,
			fmt.Sprintf("invalid monetary values: %s", strings.Join(invalid, ", ")),
			invalid)
	}
	return nil
}

// negativeFields returns qualified names of fields holding negative values.
// Iteration over the candidates is ordered to keep error output stable.
func negativeFields(section string, fields map[string]*float64) []string {
	order := []string{
		"current_assets", "non_current_assets", "current_liabilities",
		"non_current_liabilities", "gross_revenue", "net_revenue",
		"gross_profit", "ebitda",
	}
	var out []string
	for _, name := range order {
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		if *v < 0 {
			out = append(out, section+"."+name)
		}
	}
	return out
}

// inferPaymentStatus derives the canonical status from the reported status
// text plus days late. Known labels (including the Portuguese originals) take
// precedence; unknown labels fall back to the days-late signal.
func inferPaymentStatus(status string, daysLate int) models.PaymentStatus {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "PAID", "PAGO":
		return models.PaymentPaid
	case "LATE", "ATRASADO":
		return models.PaymentLate
	case "DEFAULT", "INADIMPLENTE":
		return models.PaymentDefault
	}
	if daysLate > 0 {
		return models.PaymentLate
	}
	return models.PaymentPaid
}
