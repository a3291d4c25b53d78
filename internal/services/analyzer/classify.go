package analyzer

import (
	"strings"

	"github.com/tealscan/tealscan/internal/models"
)

// assetClassRule maps name keywords to a broad asset class.
type assetClassRule struct {
	keywords []string // any match wins
	class    models.AssetClass
}

// Evaluated top-down, first match wins; no match means equity.
var assetClassRules = []assetClassRule{
	{[]string{"LIQUID", "OVERNIGHT", "BOND", "DEBT", "GILT", "TREASURY"}, models.AssetDebt},
	{[]string{"GOLD", "SILVER", "COMMODITIES"}, models.AssetCommodity},
	{[]string{"HYBRID", "BALANCED", "DYNAMIC"}, models.AssetHybrid},
}

// subCategoryRule matches a fund name against required keyword sets.
// A rule matches when every keyword in all is present and, if any is
// non-empty, at least one of those is present too.
type subCategoryRule struct {
	all      []string
	any      []string
	category models.SubCategory
}

// Ordering is load-bearing: categories overlap lexically, so the combined
// LARGE+MID rule sits above the singular MID CAP and LARGE CAP rules.
// Otherwise a "Large & Mid Cap" fund would be misfiled under one of them.
var subCategoryRules = []subCategoryRule{
	{any: []string{"SMALL CAP"}, category: models.SubCategorySmallCap},
	{all: []string{"LARGE", "MID"}, category: models.SubCategoryLargeAndMidCap},
	{any: []string{"MID CAP"}, category: models.SubCategoryMidCap},
	{any: []string{"LARGE CAP"}, category: models.SubCategoryLargeCap},
	{any: []string{"FLEXI"}, category: models.SubCategoryFlexiCap},
	{any: []string{"ELSS", "TAX SAVER"}, category: models.SubCategoryELSS},
	{any: []string{"INDEX"}, category: models.SubCategoryIndexFund},
	{any: []string{"MULTI"}, category: models.SubCategoryMultiCap},
	{any: []string{"VALUE"}, category: models.SubCategoryValueFund},
}

func (r subCategoryRule) matches(name string) bool {
	for _, kw := range r.all {
		if !strings.Contains(name, kw) {
			return false
		}
	}
	if len(r.any) == 0 {
		return len(r.all) > 0
	}
	for _, kw := range r.any {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// Classify derives the asset class and sub-category from a fund's name by
// case-insensitive substring matching against the rule tables.
func Classify(fundName string) models.Classification {
	name := strings.ToUpper(fundName)

	cls := models.Classification{
		AssetClass:  models.AssetEquity,
		SubCategory: models.SubCategoryOtherEquity,
	}

	for _, rule := range assetClassRules {
		matched := false
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				matched = true
				break
			}
		}
		if matched {
			cls.AssetClass = rule.class
			break
		}
	}

	for _, rule := range subCategoryRules {
		if rule.matches(name) {
			cls.SubCategory = rule.category
			break
		}
	}

	return cls
}

// PlanOf reports whether a fund is a direct plan or a distributor (regular)
// plan, by case-insensitive presence of "DIRECT" in the name.
func PlanOf(fundName string) models.PlanType {
	if strings.Contains(strings.ToUpper(fundName), "DIRECT") {
		return models.PlanDirect
	}
	return models.PlanRegular
}
