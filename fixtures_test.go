package pointmetric

// testCase is one predicted / ground-truth pair from the reference fixtures.
type testCase struct {
	name string
	pred PointSet
	gt   PointSet
}

var testPoints = []testCase{
	{
		name: "two_close_pairs",
		pred: PointSet{{30, 50}, {44, 70}},
		gt:   PointSet{{31, 51}, {43, 70}},
	},
	{
		name: "three_dimensional",
		pred: PointSet{{30, 50, 0}, {44, 70, 4}},
		gt:   PointSet{{31, 51, 1}, {43, 70, 3}},
	},
	{
		name: "one_missing",
		pred: PointSet{{44, 70}},
		gt:   PointSet{{31, 51}, {43, 70}},
	},
	{
		name: "one_extra",
		pred: PointSet{{30, 50}, {44, 70}, {10, 10}},
		gt:   PointSet{{31, 51}, {43, 70}},
	},
	{
		name: "two_extra_with_duplicates",
		pred: PointSet{{30, 50}, {44, 70}, {31, 51}, {30, 51}},
		gt:   PointSet{{31, 51}, {43, 70}},
	},
	{
		name: "zero_dimensional",
		pred: PointSet{{}},
		gt:   PointSet{{}},
	},
	{
		name: "empty",
		pred: PointSet{},
		gt:   PointSet{},
	},
}

// permutations returns every ordering of s. Each result is a fresh slice
// sharing the original points.
func permutations(s PointSet) []PointSet {
	if len(s) == 0 {
		return []PointSet{{}}
	}
	var out []PointSet
	for i := range s {
		rest := make(PointSet, 0, len(s)-1)
		rest = append(rest, s[:i]...)
		rest = append(rest, s[i+1:]...)
		for _, tail := range permutations(rest) {
			perm := make(PointSet, 0, len(s))
			perm = append(perm, s[i])
			perm = append(perm, tail...)
			out = append(out, perm)
		}
	}
	return out
}
