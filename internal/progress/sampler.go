package progress

// logBucketPercent is the width of the buckets non-terminal output is sampled at.
const logBucketPercent = 10

// bucketSampler admits the first step that lands in each new percentage
// bucket of the current stage.
type bucketSampler struct {
	width int
	last  int
}

func newBucketSampler(width int) *bucketSampler {
	if width <= 0 {
		width = logBucketPercent
	}
	return &bucketSampler{width: width, last: -1}
}

func (b *bucketSampler) reset() { b.last = -1 }

func (b *bucketSampler) admit(percent int) bool {
	bucket := max(0, min(percent, 100)) / b.width
	if bucket <= b.last {
		return false
	}
	b.last = bucket
	return true
}
