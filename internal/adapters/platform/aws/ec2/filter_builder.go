package ec2

import (
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const nameTagKey = "Name"

// liveInstanceStates excludes terminated instances from listings.
var liveInstanceStates = []string{"pending", "running", "shutting-down", "stopping", "stopped"}

func newFilter(name string, values ...string) types.Filter {
	return types.Filter{Name: aws.String(name), Values: values}
}

// SplitFilterValue splits a comma separated filter value, dropping blanks.
func SplitFilterValue(value string) []string {
	if !strings.Contains(value, ",") {
		return []string{value}
	}
	parts := strings.Split(value, ",")
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return trimmed
}

// tagSpecifications tags a resource at creation time. name becomes the Name
// tag unless tags already carries one.
func tagSpecifications(rt types.ResourceType, name string, tags map[string]string) []types.TagSpecification {
	merged := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		merged[k] = v
	}
	if _, ok := merged[nameTagKey]; !ok && name != "" {
		merged[nameTagKey] = name
	}
	if len(merged) == 0 {
		return nil
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	awsTags := make([]types.Tag, 0, len(keys))
	for _, k := range keys {
		awsTags = append(awsTags, types.Tag{Key: aws.String(k), Value: aws.String(merged[k])})
	}
	return []types.TagSpecification{{ResourceType: rt, Tags: awsTags}}
}

func tagsToMap(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for _, t := range tags {
		if t.Key != nil {
			out[*t.Key] = aws.ToString(t.Value)
		}
	}
	return out
}

func nameFromTags(tags []types.Tag) string {
	for _, t := range tags {
		if aws.ToString(t.Key) == nameTagKey {
			return aws.ToString(t.Value)
		}
	}
	return ""
}
