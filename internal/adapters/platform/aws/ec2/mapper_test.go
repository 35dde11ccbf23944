package ec2

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

func TestMapInstance(t *testing.T) {
	launched := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	got := mapInstance(types.Instance{
		InstanceId:       aws.String("i-123"),
		InstanceType:     types.InstanceTypeT3Small,
		ImageId:          aws.String("ami-1"),
		State:            &types.InstanceState{Name: types.InstanceStateNameRunning},
		Placement:        &types.Placement{AvailabilityZone: aws.String("us-east-1b")},
		SubnetId:         aws.String("subnet-1"),
		KeyName:          aws.String("deploy"),
		SecurityGroups:   []types.GroupIdentifier{{GroupId: aws.String("sg-1")}, {}},
		PublicIpAddress:  aws.String("1.2.3.4"),
		PrivateIpAddress: aws.String("10.0.0.4"),
		LaunchTime:       &launched,
		Tags:             []types.Tag{{Key: aws.String("Name"), Value: aws.String("web")}, {Key: aws.String("env"), Value: aws.String("prod")}},
	})

	assert.Equal(t, &domain.Instance{
		ID:               "i-123",
		Name:             "web",
		InstanceType:     "t3.small",
		ImageID:          "ami-1",
		State:            "running",
		Zone:             "us-east-1b",
		SubnetID:         "subnet-1",
		KeyPairName:      "deploy",
		SecurityGroupIDs: []string{"sg-1"},
		PublicIPs:        []string{"1.2.3.4"},
		PrivateIPs:       []string{"10.0.0.4"},
		LaunchTime:       &launched,
		Tags:             map[string]string{"Name": "web", "env": "prod"},
	}, got)
}

func TestMapInstance_SparseFields(t *testing.T) {
	got := mapInstance(types.Instance{InstanceId: aws.String("i-1")})
	assert.Equal(t, "i-1", got.ID)
	assert.Empty(t, got.State)
	assert.NotNil(t, got.PublicIPs)
	assert.Nil(t, got.Tags)
}

func TestMapRule_ReferencedGroup(t *testing.T) {
	got := mapRule(types.SecurityGroupRule{
		SecurityGroupRuleId: aws.String("sgr-1"),
		GroupId:             aws.String("sg-1"),
		IpProtocol:          aws.String("-1"),
		FromPort:            aws.Int32(-1),
		ToPort:              aws.Int32(-1),
		ReferencedGroupInfo: &types.ReferencedSecurityGroup{GroupId: aws.String("sg-2")},
	})
	assert.Equal(t, "sg-2", got.SourceGroupID)
	assert.False(t, got.Egress)
	assert.Equal(t, int32(-1), got.FromPort)
}

func TestMapVolume_FirstAttachment(t *testing.T) {
	got := mapVolume(types.Volume{
		VolumeId:    aws.String("vol-1"),
		Attachments: []types.VolumeAttachment{{}, {InstanceId: aws.String("i-9")}},
	})
	assert.Equal(t, "i-9", got.AttachedTo)
}

func TestTagSpecifications(t *testing.T) {
	assert.Nil(t, tagSpecifications(types.ResourceTypeVpc, "", nil))

	specs := tagSpecifications(types.ResourceTypeVpc, "main", map[string]string{"team": "infra"})
	require.Len(t, specs, 1)
	assert.Equal(t, []types.Tag{
		{Key: aws.String("Name"), Value: aws.String("main")},
		{Key: aws.String("team"), Value: aws.String("infra")},
	}, specs[0].Tags)

	// An explicit Name tag wins over the name argument.
	specs = tagSpecifications(types.ResourceTypeVpc, "main", map[string]string{"Name": "custom"})
	assert.Equal(t, "custom", aws.ToString(specs[0].Tags[0].Value))
}

func TestSplitFilterValue(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a, b,,c ", []string{"a", "b", "c"}},
		{" , ", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitFilterValue(tt.in), tt.in)
	}
}

func TestEncodeUserData(t *testing.T) {
	assert.Equal(t, "aGVsbG8=", encodeUserData("aGVsbG8="))
	assert.Equal(t, "aGVsbG8gd29ybGQ=", encodeUserData("hello world"))
}
