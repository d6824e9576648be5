package table

// PartitioningScheme describes how partition values map onto storage paths.
//
//	Directory - s3://bucket/5956/2024-03-24
//	Hive      - s3://bucket/implant_id=5956/date=2024-03-24
type PartitioningScheme string

const (
	PartitioningDirectory PartitioningScheme = "directory"
	PartitioningHive      PartitioningScheme = "hive"
)

// Partition names a partition column and its type, in partitioning order.
type Partition struct {
	Column string
	Type   DataType
}

// ExactlyOneEqualityFilter reports the single equality filter targeting the
// partition column, if exactly one exists. Multiple matches, or a match with
// a non-equality operator, disable pruning for that partition.
func ExactlyOneEqualityFilter(partition Partition, filters []Filter) (Filter, bool) {
	var match Filter
	found := false

	for _, f := range filters {
		if f.Column != partition.Column {
			continue
		}
		if found || f.Operator != OpEqual {
			return Filter{}, false
		}
		match = f
		found = true
	}

	return match, found
}
