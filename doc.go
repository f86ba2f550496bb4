// Package pointmetric scores a predicted set of point detections against a
// ground-truth set.
//
// The score combines the optimal one-to-one displacement cost between the two
// sets with a fixed penalty per unmatched point:
//
//	metric = Σ distance(matched pairs) + k × |N − M|
//
// where N and M are the set sizes and k is the penalty weight (100 unless
// configured otherwise). Pairs are chosen by a minimum-cost bipartite
// matching over the N×M Euclidean cost matrix, so the result does not depend
// on the order of either input.
//
// Data flow is linear: point sets → CalculateCostMatrix → SumAssignmentCost
// plus CountExtraOrMissing → PointMetric. Every function is pure; concurrent
// callers need no coordination.
//
// The matching itself is delegated to a Solver. The default is the in-repo
// Kuhn–Munkres implementation; any other Solver can be plugged in via Config.
package pointmetric
