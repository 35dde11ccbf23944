package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	apperrors "github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Network implements ports.NetworkService over VPCs and their subnets.
type Network struct {
	*Service
}

func (n *Network) ListNetworks(ctx context.Context) ([]*domain.Network, error) {
	paginator := ec2.NewDescribeVpcsPaginator(n.client, &ec2.DescribeVpcsInput{})
	networks := []*domain.Network{}
	for paginator.HasMorePages() {
		if err := n.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, n.fail(ctx, "VPC", "", err)
		}
		for _, v := range page.Vpcs {
			networks = append(networks, mapVpc(v))
		}
	}
	return networks, nil
}

func (n *Network) GetNetwork(ctx context.Context, id string) (*domain.Network, error) {
	if err := n.wait(ctx); err != nil {
		return nil, err
	}
	out, err := n.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{id}})
	if err != nil {
		return nil, n.fail(ctx, "VPC", id, err)
	}
	if len(out.Vpcs) == 0 {
		return nil, apperrors.NotFound(domain.KindNetwork.String(), id)
	}
	return mapVpc(out.Vpcs[0]), nil
}

func (n *Network) CreateNetwork(ctx context.Context, spec domain.NetworkSpec) (*domain.Network, error) {
	if err := n.wait(ctx); err != nil {
		return nil, err
	}
	out, err := n.client.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock:         aws.String(spec.CIDRBlock),
		TagSpecifications: tagSpecifications(types.ResourceTypeVpc, spec.Name, spec.Tags),
	})
	if err != nil {
		return nil, n.fail(ctx, "VPC", spec.Name, err)
	}
	if out.Vpc == nil {
		return nil, apperrors.New(apperrors.CodePlatformAPIError, "CreateVpc returned no VPC")
	}
	return mapVpc(*out.Vpc), nil
}

func (n *Network) DeleteNetwork(ctx context.Context, id string) error {
	if err := n.wait(ctx); err != nil {
		return err
	}
	if _, err := n.client.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: aws.String(id)}); err != nil {
		return n.fail(ctx, "VPC", id, err)
	}
	return nil
}

func (n *Network) ListSubnets(ctx context.Context, networkID string) ([]*domain.Subnet, error) {
	paginator := ec2.NewDescribeSubnetsPaginator(n.client, &ec2.DescribeSubnetsInput{
		Filters: []types.Filter{newFilter("vpc-id", networkID)},
	})
	subnets := []*domain.Subnet{}
	for paginator.HasMorePages() {
		if err := n.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, n.fail(ctx, "subnets of VPC", networkID, err)
		}
		for _, s := range page.Subnets {
			subnets = append(subnets, mapSubnet(s))
		}
	}
	return subnets, nil
}

// GetSubnet returns a not-found error for subnets of other networks.
func (n *Network) GetSubnet(ctx context.Context, networkID string, id string) (*domain.Subnet, error) {
	if err := n.wait(ctx); err != nil {
		return nil, err
	}
	out, err := n.client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{SubnetIds: []string{id}})
	if err != nil {
		return nil, n.fail(ctx, "subnet", id, err)
	}
	for _, s := range out.Subnets {
		if aws.ToString(s.SubnetId) == id && aws.ToString(s.VpcId) == networkID {
			return mapSubnet(s), nil
		}
	}
	return nil, apperrors.NotFound(domain.KindSubnet.String(), id)
}

func (n *Network) CreateSubnet(ctx context.Context, networkID string, spec domain.SubnetSpec) (*domain.Subnet, error) {
	input := &ec2.CreateSubnetInput{
		VpcId:             aws.String(networkID),
		CidrBlock:         aws.String(spec.CIDRBlock),
		TagSpecifications: tagSpecifications(types.ResourceTypeSubnet, spec.Name, spec.Tags),
	}
	if spec.Zone != "" {
		input.AvailabilityZone = aws.String(spec.Zone)
	}
	if err := n.wait(ctx); err != nil {
		return nil, err
	}
	out, err := n.client.CreateSubnet(ctx, input)
	if err != nil {
		return nil, n.fail(ctx, "subnet", spec.Name, err)
	}
	if out.Subnet == nil {
		return nil, apperrors.New(apperrors.CodePlatformAPIError, "CreateSubnet returned no subnet")
	}
	return mapSubnet(*out.Subnet), nil
}

func (n *Network) DeleteSubnet(ctx context.Context, networkID string, id string) error {
	if _, err := n.GetSubnet(ctx, networkID, id); err != nil {
		return err
	}
	if err := n.wait(ctx); err != nil {
		return err
	}
	if _, err := n.client.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{SubnetId: aws.String(id)}); err != nil {
		return n.fail(ctx, "subnet", id, err)
	}
	return nil
}
