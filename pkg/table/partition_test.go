package table_test

import (
	"testing"

	"github.com/goliatone/go-catgen/pkg/table"
)

func TestExactlyOneEqualityFilter(t *testing.T) {
	partition := table.Partition{Column: "device_id", Type: table.Scalar(table.TypeInt64)}

	cases := []struct {
		name    string
		filters []table.Filter
		want    table.Filter
		ok      bool
	}{
		{
			name:    "single equality pins the partition",
			filters: []table.Filter{table.NewFilter("device_id", table.OpEqual, 5956)},
			want:    table.NewFilter("device_id", table.OpEqual, 5956),
			ok:      true,
		},
		{
			name: "other columns are ignored",
			filters: []table.Filter{
				table.NewFilter("ts", table.OpGreater, 0),
				table.NewFilter("device_id", table.OpEqual, 5956),
			},
			want: table.NewFilter("device_id", table.OpEqual, 5956),
			ok:   true,
		},
		{
			name:    "no filter on the column",
			filters: []table.Filter{table.NewFilter("ts", table.OpGreater, 0)},
		},
		{
			name:    "non-equality operator disables pruning",
			filters: []table.Filter{table.NewFilter("device_id", table.OpGreater, 100)},
		},
		{
			name: "multiple filters on the column disable pruning",
			filters: []table.Filter{
				table.NewFilter("device_id", table.OpEqual, 1),
				table.NewFilter("device_id", table.OpEqual, 2),
			},
		},
		{
			name: "equality plus range disables pruning",
			filters: []table.Filter{
				table.NewFilter("device_id", table.OpEqual, 1),
				table.NewFilter("device_id", table.OpLess, 9),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := table.ExactlyOneEqualityFilter(partition, tc.filters)
			if ok != tc.ok {
				t.Fatalf("ok mismatch: want %v, got %v", tc.ok, ok)
			}
			if ok && got != tc.want {
				t.Fatalf("filter mismatch: want %+v, got %+v", tc.want, got)
			}
		})
	}
}
