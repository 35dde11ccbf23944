package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	apperrors "github.com/olusolaa/cloud-resource-api/internal/errors"
)

// Security implements ports.SecurityService. Key pairs are identified by
// name.
type Security struct {
	*Service
}

func (s *Security) ListKeyPairs(ctx context.Context) ([]*domain.KeyPair, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out, err := s.client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{})
	if err != nil {
		return nil, s.fail(ctx, "key pair", "", err)
	}
	keys := make([]*domain.KeyPair, 0, len(out.KeyPairs))
	for _, k := range out.KeyPairs {
		keys = append(keys, mapKeyPair(k))
	}
	return keys, nil
}

func (s *Security) GetKeyPair(ctx context.Context, id string) (*domain.KeyPair, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out, err := s.client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{KeyNames: []string{id}})
	if err != nil {
		return nil, s.fail(ctx, "key pair", id, err)
	}
	if len(out.KeyPairs) == 0 {
		return nil, apperrors.NotFound(domain.KindKeyPair.String(), id)
	}
	return mapKeyPair(out.KeyPairs[0]), nil
}

func (s *Security) CreateKeyPair(ctx context.Context, spec domain.KeyPairSpec) (*domain.KeyPair, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out, err := s.client.CreateKeyPair(ctx, &ec2.CreateKeyPairInput{KeyName: aws.String(spec.Name)})
	if err != nil {
		return nil, s.fail(ctx, "key pair", spec.Name, err)
	}
	name := aws.ToString(out.KeyName)
	return &domain.KeyPair{
		ID:          name,
		Name:        name,
		Fingerprint: aws.ToString(out.KeyFingerprint),
		Material:    aws.ToString(out.KeyMaterial),
	}, nil
}

func (s *Security) DeleteKeyPair(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	if _, err := s.client.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{KeyName: aws.String(id)}); err != nil {
		return s.fail(ctx, "key pair", id, err)
	}
	return nil
}

func (s *Security) ListSecurityGroups(ctx context.Context) ([]*domain.SecurityGroup, error) {
	paginator := ec2.NewDescribeSecurityGroupsPaginator(s.client, &ec2.DescribeSecurityGroupsInput{})
	groups := []*domain.SecurityGroup{}
	for paginator.HasMorePages() {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.fail(ctx, "security group", "", err)
		}
		for _, g := range page.SecurityGroups {
			groups = append(groups, mapSecurityGroup(g))
		}
	}
	return groups, nil
}

func (s *Security) GetSecurityGroup(ctx context.Context, id string) (*domain.SecurityGroup, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out, err := s.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{GroupIds: []string{id}})
	if err != nil {
		return nil, s.fail(ctx, "security group", id, err)
	}
	if len(out.SecurityGroups) == 0 {
		return nil, apperrors.NotFound(domain.KindSecurityGroup.String(), id)
	}
	return mapSecurityGroup(out.SecurityGroups[0]), nil
}

func (s *Security) CreateSecurityGroup(ctx context.Context, spec domain.SecurityGroupSpec) (*domain.SecurityGroup, error) {
	input := &ec2.CreateSecurityGroupInput{
		GroupName:         aws.String(spec.Name),
		Description:       aws.String(spec.Description),
		TagSpecifications: tagSpecifications(types.ResourceTypeSecurityGroup, "", spec.Tags),
	}
	if spec.NetworkID != "" {
		input.VpcId = aws.String(spec.NetworkID)
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out, err := s.client.CreateSecurityGroup(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, "security group", spec.Name, err)
	}
	return &domain.SecurityGroup{
		ID:          aws.ToString(out.GroupId),
		Name:        spec.Name,
		Description: spec.Description,
		NetworkID:   spec.NetworkID,
		Tags:        tagsToMap(out.Tags),
	}, nil
}

func (s *Security) DeleteSecurityGroup(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	if _, err := s.client.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{GroupId: aws.String(id)}); err != nil {
		return s.fail(ctx, "security group", id, err)
	}
	return nil
}

func (s *Security) ListRules(ctx context.Context, groupID string) ([]*domain.SecurityGroupRule, error) {
	paginator := ec2.NewDescribeSecurityGroupRulesPaginator(s.client, &ec2.DescribeSecurityGroupRulesInput{
		Filters: []types.Filter{newFilter("group-id", groupID)},
	})
	rules := []*domain.SecurityGroupRule{}
	for paginator.HasMorePages() {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.fail(ctx, "rules of security group", groupID, err)
		}
		for _, r := range page.SecurityGroupRules {
			rules = append(rules, mapRule(r))
		}
	}
	return rules, nil
}

func (s *Security) CreateRule(ctx context.Context, groupID string, spec domain.RuleSpec) (*domain.SecurityGroupRule, error) {
	perm := types.IpPermission{
		IpProtocol: aws.String(spec.IPProtocol),
		FromPort:   aws.Int32(spec.FromPort),
		ToPort:     aws.Int32(spec.ToPort),
	}
	if spec.CIDRIP != "" {
		perm.IpRanges = []types.IpRange{{CidrIp: aws.String(spec.CIDRIP)}}
	}
	if spec.SourceGroupID != "" {
		perm.UserIdGroupPairs = []types.UserIdGroupPair{{GroupId: aws.String(spec.SourceGroupID)}}
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var created []types.SecurityGroupRule
	if spec.Egress {
		out, err := s.client.AuthorizeSecurityGroupEgress(ctx, &ec2.AuthorizeSecurityGroupEgressInput{
			GroupId:       aws.String(groupID),
			IpPermissions: []types.IpPermission{perm},
		})
		if err != nil {
			return nil, s.fail(ctx, "egress rule of security group", groupID, err)
		}
		created = out.SecurityGroupRules
	} else {
		out, err := s.client.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
			GroupId:       aws.String(groupID),
			IpPermissions: []types.IpPermission{perm},
		})
		if err != nil {
			return nil, s.fail(ctx, "ingress rule of security group", groupID, err)
		}
		created = out.SecurityGroupRules
	}
	if len(created) == 0 {
		return nil, apperrors.New(apperrors.CodePlatformAPIError, fmt.Sprintf("authorizing a rule on %s returned no rule", groupID))
	}
	return mapRule(created[0]), nil
}

// DeleteRule revokes ruleID, which must belong to groupID.
func (s *Security) DeleteRule(ctx context.Context, groupID string, ruleID string) error {
	rules, err := s.ListRules(ctx, groupID)
	if err != nil {
		return err
	}
	var target *domain.SecurityGroupRule
	for _, r := range rules {
		if r.ID == ruleID {
			target = r
			break
		}
	}
	if target == nil {
		return apperrors.NotFound(domain.KindSecurityGroupRule.String(), ruleID)
	}

	if err := s.wait(ctx); err != nil {
		return err
	}
	if target.Egress {
		_, err = s.client.RevokeSecurityGroupEgress(ctx, &ec2.RevokeSecurityGroupEgressInput{
			GroupId:              aws.String(groupID),
			SecurityGroupRuleIds: []string{ruleID},
		})
	} else {
		_, err = s.client.RevokeSecurityGroupIngress(ctx, &ec2.RevokeSecurityGroupIngressInput{
			GroupId:              aws.String(groupID),
			SecurityGroupRuleIds: []string{ruleID},
		})
	}
	if err != nil {
		return s.fail(ctx, "security group rule", ruleID, err)
	}
	return nil
}
