package insight

import (
	"fmt"
	"sort"
)

// InventoryEvaluator flags dead stock (sell-through below threshold)
// and stockout risk (days of stock below the reorder point).
type InventoryEvaluator struct {
	cfg Config
}

func (InventoryEvaluator) Name() string { return "inventory" }

func (e InventoryEvaluator) Evaluate(snap *MetricSnapshot, _ BenchmarkSet) []Finding {
	if len(snap.Inventory) == 0 {
		return nil
	}

	// Map iteration order is random; sort SKUs so output is stable.
	skus := make([]string, 0, len(snap.Inventory))
	for sku := range snap.Inventory {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	findings := make([]Finding, 0, len(skus))
	for _, sku := range skus {
		sig := snap.Inventory[sku]

		if sig.DaysOfStock < e.cfg.ReorderDaysOfStock {
			findings = append(findings, e.stockoutRisk(snap, sku, sig))
			continue
		}
		if sig.SellThroughRate < e.cfg.DeadStockSellThrough {
			findings = append(findings, e.deadStock(snap, sku, sig))
		}
	}

	return findings
}

func (e InventoryEvaluator) stockoutRisk(snap *MetricSnapshot, sku string, sig InventorySignal) Finding {
	urgency := clamp01(1 - sig.DaysOfStock/e.cfg.ReorderDaysOfStock)
	potential := snap.TrailingRevenue30d * e.cfg.StockoutRevenueShare * urgency

	f := Finding{
		Category: CategoryInventory,
		Title:    fmt.Sprintf("Reorder %s before it sells out", sku),
		Description: fmt.Sprintf(
			"%s has %.0f days of stock left at the current sales velocity. A stockout cuts off revenue until restock.",
			sku, sig.DaysOfStock),
		Severity:         clamp01(0.5 + 0.5*urgency),
		PrimaryMetric:    "sku:" + sku,
		PotentialRevenue: potential,
		Steps: []string{
			"Place a purchase order with the supplier now",
			"Set a low-stock alert at the reorder threshold",
			"Enable backorders while waiting on restock",
		},
	}

	return newFinding(snap, f, map[string]float64{
		"days_of_stock":     sig.DaysOfStock,
		"reorder_threshold": e.cfg.ReorderDaysOfStock,
	})
}

func (e InventoryEvaluator) deadStock(snap *MetricSnapshot, sku string, sig InventorySignal) Finding {
	f := Finding{
		Category: CategoryInventory,
		Title:    fmt.Sprintf("Clear dead stock for %s", sku),
		Description: fmt.Sprintf(
			"%s is selling through at %.0f%% against a %.0f%% floor. It is tying up cash and warehouse space.",
			sku, sig.SellThroughRate*100, e.cfg.DeadStockSellThrough*100),
		Severity:      clamp01(0.3 + 0.4*(1-sig.SellThroughRate/e.cfg.DeadStockSellThrough)),
		PrimaryMetric: "sku:" + sku,
		Steps: []string{
			"Run a clearance promotion on the slow mover",
			"Bundle it with a bestseller",
			"Pause replenishment orders",
		},
	}

	return newFinding(snap, f, map[string]float64{
		"sell_through_rate":      sig.SellThroughRate,
		"sell_through_threshold": e.cfg.DeadStockSellThrough,
	})
}
