package ec2

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
)

func mapRegion(r types.Region) *domain.Region {
	name := aws.ToString(r.RegionName)
	return &domain.Region{ID: name, Name: name, Endpoint: aws.ToString(r.Endpoint)}
}

func mapZone(z types.AvailabilityZone) *domain.Zone {
	name := aws.ToString(z.ZoneName)
	return &domain.Zone{ID: name, Name: name, Region: aws.ToString(z.RegionName), State: string(z.State)}
}

func mapInstanceType(it types.InstanceTypeInfo) *domain.InstanceType {
	name := string(it.InstanceType)
	out := &domain.InstanceType{ID: name, Name: name, Family: strings.SplitN(name, ".", 2)[0]}
	if it.VCpuInfo != nil {
		out.VCPUs = aws.ToInt32(it.VCpuInfo.DefaultVCpus)
	}
	if it.MemoryInfo != nil {
		out.RAMMiB = aws.ToInt64(it.MemoryInfo.SizeInMiB)
	}
	if it.InstanceStorageInfo != nil {
		out.SizeTotalGB = aws.ToInt64(it.InstanceStorageInfo.TotalSizeInGB)
	}
	return out
}

func mapInstance(i types.Instance) *domain.Instance {
	out := &domain.Instance{
		ID:               aws.ToString(i.InstanceId),
		Name:             nameFromTags(i.Tags),
		InstanceType:     string(i.InstanceType),
		ImageID:          aws.ToString(i.ImageId),
		SubnetID:         aws.ToString(i.SubnetId),
		KeyPairName:      aws.ToString(i.KeyName),
		SecurityGroupIDs: []string{},
		PublicIPs:        []string{},
		PrivateIPs:       []string{},
		LaunchTime:       i.LaunchTime,
		Tags:             tagsToMap(i.Tags),
	}
	if i.State != nil {
		out.State = string(i.State.Name)
	}
	if i.Placement != nil {
		out.Zone = aws.ToString(i.Placement.AvailabilityZone)
	}
	for _, g := range i.SecurityGroups {
		if g.GroupId != nil {
			out.SecurityGroupIDs = append(out.SecurityGroupIDs, *g.GroupId)
		}
	}
	if i.PublicIpAddress != nil {
		out.PublicIPs = append(out.PublicIPs, *i.PublicIpAddress)
	}
	if i.PrivateIpAddress != nil {
		out.PrivateIPs = append(out.PrivateIPs, *i.PrivateIpAddress)
	}
	return out
}

func mapKeyPair(k types.KeyPairInfo) *domain.KeyPair {
	name := aws.ToString(k.KeyName)
	return &domain.KeyPair{ID: name, Name: name, Fingerprint: aws.ToString(k.KeyFingerprint)}
}

func mapSecurityGroup(g types.SecurityGroup) *domain.SecurityGroup {
	return &domain.SecurityGroup{
		ID:          aws.ToString(g.GroupId),
		Name:        aws.ToString(g.GroupName),
		Description: aws.ToString(g.Description),
		NetworkID:   aws.ToString(g.VpcId),
		Tags:        tagsToMap(g.Tags),
	}
}

func mapRule(r types.SecurityGroupRule) *domain.SecurityGroupRule {
	out := &domain.SecurityGroupRule{
		ID:              aws.ToString(r.SecurityGroupRuleId),
		SecurityGroupID: aws.ToString(r.GroupId),
		Egress:          aws.ToBool(r.IsEgress),
		IPProtocol:      aws.ToString(r.IpProtocol),
		FromPort:        aws.ToInt32(r.FromPort),
		ToPort:          aws.ToInt32(r.ToPort),
		CIDRIP:          aws.ToString(r.CidrIpv4),
	}
	if r.ReferencedGroupInfo != nil {
		out.SourceGroupID = aws.ToString(r.ReferencedGroupInfo.GroupId)
	}
	return out
}

func mapVpc(v types.Vpc) *domain.Network {
	return &domain.Network{
		ID:        aws.ToString(v.VpcId),
		Name:      nameFromTags(v.Tags),
		CIDRBlock: aws.ToString(v.CidrBlock),
		State:     string(v.State),
		IsDefault: aws.ToBool(v.IsDefault),
		Tags:      tagsToMap(v.Tags),
	}
}

func mapSubnet(s types.Subnet) *domain.Subnet {
	return &domain.Subnet{
		ID:        aws.ToString(s.SubnetId),
		Name:      nameFromTags(s.Tags),
		NetworkID: aws.ToString(s.VpcId),
		CIDRBlock: aws.ToString(s.CidrBlock),
		Zone:      aws.ToString(s.AvailabilityZone),
		State:     string(s.State),
		Tags:      tagsToMap(s.Tags),
	}
}

func mapVolume(v types.Volume) *domain.Volume {
	out := &domain.Volume{
		ID:         aws.ToString(v.VolumeId),
		Name:       nameFromTags(v.Tags),
		SizeGB:     aws.ToInt32(v.Size),
		Zone:       aws.ToString(v.AvailabilityZone),
		State:      string(v.State),
		VolumeType: string(v.VolumeType),
		SnapshotID: aws.ToString(v.SnapshotId),
		CreatedAt:  v.CreateTime,
		Tags:       tagsToMap(v.Tags),
	}
	for _, a := range v.Attachments {
		if a.InstanceId != nil {
			out.AttachedTo = *a.InstanceId
			break
		}
	}
	return out
}

func mapSnapshot(s types.Snapshot) *domain.Snapshot {
	return &domain.Snapshot{
		ID:          aws.ToString(s.SnapshotId),
		Name:        nameFromTags(s.Tags),
		Description: aws.ToString(s.Description),
		VolumeID:    aws.ToString(s.VolumeId),
		SizeGB:      aws.ToInt32(s.VolumeSize),
		State:       string(s.State),
		CreatedAt:   s.StartTime,
		Tags:        tagsToMap(s.Tags),
	}
}
