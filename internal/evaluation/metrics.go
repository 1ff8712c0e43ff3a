package evaluation

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Plan quality metrics
var (
	planSlotCoverage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plan_slot_coverage_ratio",
			Help: "Fraction of outfit slots filled in the last generated plan",
		},
		[]string{"mode"},
	)

	planOwnedGarments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plan_owned_garments_ratio",
			Help: "Fraction of planned slots referencing owned garments",
		},
		[]string{"mode"},
	)

	planCategoryFit = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plan_category_fit_ratio",
			Help: "Fraction of planned slots in the correct catalog category",
		},
		[]string{"mode"},
	)

	planVariety = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plan_variety_ratio",
			Help: "Fraction of planned dates wearing a distinct combination",
		},
		[]string{"mode"},
	)

	planOverall = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plan_overall_quality",
			Help: "Weighted overall quality of the last generated plan",
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(
		planSlotCoverage,
		planOwnedGarments,
		planCategoryFit,
		planVariety,
		planOverall,
	)
}

// Record publishes a plan quality report for the given planning mode.
func Record(mode string, r Report) {
	planSlotCoverage.WithLabelValues(mode).Set(r.SlotCoverage)
	planOwnedGarments.WithLabelValues(mode).Set(r.OwnedGarments)
	planCategoryFit.WithLabelValues(mode).Set(r.CategoryFit)
	planVariety.WithLabelValues(mode).Set(r.Variety)
	planOverall.WithLabelValues(mode).Set(r.Overall)
}
