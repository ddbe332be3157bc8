package purchase

import "repairdesk/pkg/numerator"

// NumberPrefix is the document number prefix, e.g. PUR-2026-00001.
const NumberPrefix = "PUR"

// NumeratorStrategy for purchase numbers. Strict keeps numbers gapless
// enough for a paper trail; throughput is not a concern here.
const NumeratorStrategy = numerator.StrategyStrict
