package ec2

import (
	"context"
	"encoding/base64"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	apperrors "github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Compute implements ports.ComputeService.
type Compute struct {
	*Service
}

func (c *Compute) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	out, err := c.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, c.fail(ctx, "AWS region", "", err)
	}
	regions := make([]*domain.Region, 0, len(out.Regions))
	for _, r := range out.Regions {
		regions = append(regions, mapRegion(r))
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].ID < regions[j].ID })
	return regions, nil
}

func (c *Compute) GetRegion(ctx context.Context, id string) (*domain.Region, error) {
	regions, err := c.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range regions {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NotFound(domain.KindRegion.String(), id)
}

// ListZones lists the zones of regionID, using a client for that region.
func (c *Compute) ListZones(ctx context.Context, regionID string) ([]*domain.Zone, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	out, err := c.clientFor(regionID).DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{
		Filters: []types.Filter{newFilter("region-name", regionID)},
	})
	if err != nil {
		return nil, c.fail(ctx, "availability zones of region", regionID, err)
	}
	zones := make([]*domain.Zone, 0, len(out.AvailabilityZones))
	for _, z := range out.AvailabilityZones {
		zones = append(zones, mapZone(z))
	}
	return zones, nil
}

func (c *Compute) ListInstanceTypes(ctx context.Context) ([]*domain.InstanceType, error) {
	paginator := ec2.NewDescribeInstanceTypesPaginator(c.client, &ec2.DescribeInstanceTypesInput{})
	var instanceTypes []*domain.InstanceType
	for paginator.HasMorePages() {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.fail(ctx, "instance type", "", err)
		}
		for _, it := range page.InstanceTypes {
			instanceTypes = append(instanceTypes, mapInstanceType(it))
		}
	}
	sort.Slice(instanceTypes, func(i, j int) bool { return instanceTypes[i].ID < instanceTypes[j].ID })
	return instanceTypes, nil
}

func (c *Compute) GetInstanceType(ctx context.Context, id string) (*domain.InstanceType, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	out, err := c.client.DescribeInstanceTypes(ctx, &ec2.DescribeInstanceTypesInput{
		InstanceTypes: []types.InstanceType{types.InstanceType(id)},
	})
	if err != nil {
		return nil, c.fail(ctx, "instance type", id, err)
	}
	if len(out.InstanceTypes) == 0 {
		return nil, apperrors.NotFound(domain.KindInstanceType.String(), id)
	}
	return mapInstanceType(out.InstanceTypes[0]), nil
}

func (c *Compute) ListInstances(ctx context.Context) ([]*domain.Instance, error) {
	paginator := ec2.NewDescribeInstancesPaginator(c.client, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{newFilter("instance-state-name", liveInstanceStates...)},
	})
	instances := []*domain.Instance{}
	pageNum := 0
	for paginator.HasMorePages() {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		pageNum++
		c.logger.Debugf(ctx, "Fetching EC2 instances page %d", pageNum)
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.fail(ctx, "EC2 instance", "", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				if instance.InstanceId == nil {
					continue
				}
				instances = append(instances, mapInstance(instance))
			}
		}
	}
	return instances, nil
}

func (c *Compute) GetInstance(ctx context.Context, id string) (*domain.Instance, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	out, err := c.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return nil, c.fail(ctx, "EC2 instance", id, err)
	}
	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			if aws.ToString(instance.InstanceId) == id {
				return mapInstance(instance), nil
			}
		}
	}
	return nil, apperrors.NotFound(domain.KindInstance.String(), id)
}

func (c *Compute) CreateInstance(ctx context.Context, spec domain.InstanceSpec) (*domain.Instance, error) {
	input := &ec2.RunInstancesInput{
		ImageId:           aws.String(spec.ImageID),
		InstanceType:      types.InstanceType(spec.InstanceType),
		MinCount:          aws.Int32(1),
		MaxCount:          aws.Int32(1),
		SecurityGroupIds:  spec.SecurityGroupIDs,
		TagSpecifications: tagSpecifications(types.ResourceTypeInstance, spec.Name, spec.Tags),
	}
	if spec.KeyPairName != "" {
		input.KeyName = aws.String(spec.KeyPairName)
	}
	if spec.SubnetID != "" {
		input.SubnetId = aws.String(spec.SubnetID)
	}
	if spec.Zone != "" {
		input.Placement = &types.Placement{AvailabilityZone: aws.String(spec.Zone)}
	}
	if spec.UserData != "" {
		input.UserData = aws.String(encodeUserData(spec.UserData))
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	out, err := c.client.RunInstances(ctx, input)
	if err != nil {
		return nil, c.fail(ctx, "EC2 instance", spec.Name, err)
	}
	if len(out.Instances) == 0 {
		return nil, apperrors.New(apperrors.CodePlatformAPIError, "RunInstances returned no instance")
	}
	return mapInstance(out.Instances[0]), nil
}

func (c *Compute) DeleteInstance(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	if _, err := c.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: []string{id}}); err != nil {
		return c.fail(ctx, "EC2 instance", id, err)
	}
	return nil
}

func (c *Compute) RebootInstance(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	if _, err := c.client.RebootInstances(ctx, &ec2.RebootInstancesInput{InstanceIds: []string{id}}); err != nil {
		return c.fail(ctx, "EC2 instance", id, err)
	}
	return nil
}

func (c *Compute) StartInstance(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	if _, err := c.client.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}}); err != nil {
		return c.fail(ctx, "EC2 instance", id, err)
	}
	return nil
}

func (c *Compute) StopInstance(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	if _, err := c.client.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}}); err != nil {
		return c.fail(ctx, "EC2 instance", id, err)
	}
	return nil
}

// encodeUserData base64-encodes user data unless it already is.
func encodeUserData(data string) string {
	if _, err := base64.StdEncoding.DecodeString(data); err == nil {
		return data
	}
	return base64.StdEncoding.EncodeToString([]byte(data))
}
