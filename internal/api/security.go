package api

import (
	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
)

func securityOf(req *resource.Request) (ports.SecurityService, error) {
	p, err := provider(req)
	if err != nil {
		return nil, err
	}
	return p.Security(), nil
}

func registerSecurity(r *router.Router, deps Deps) error {
	summary, err := resource.SummarySingleton(domain.KindSecurity, resource.Links{
		"keypairs":        "keypair-list",
		"security_groups": "security_group-list",
	})
	if err != nil {
		return err
	}
	if err := r.Register("security", summary, "security"); err != nil {
		return err
	}

	keyPairs, err := resource.NewHandler(resource.Definition[*domain.KeyPair]{
		Kind:         domain.KindKeyPair,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveDirect,
		LookupRegex:  `[^/]+`,
		List: func(req *resource.Request) ([]*domain.KeyPair, error) {
			s, err := securityOf(req)
			if err != nil {
				return nil, err
			}
			return s.ListKeyPairs(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.KeyPair, error) {
			s, err := securityOf(req)
			if err != nil {
				return nil, err
			}
			return s.GetKeyPair(req.Context(), id)
		},
		NewInput: newInput[domain.KeyPairSpec](),
		Create: func(req *resource.Request, input any) (*domain.KeyPair, error) {
			spec, err := inputAs[domain.KeyPairSpec](input)
			if err != nil {
				return nil, err
			}
			s, err := securityOf(req)
			if err != nil {
				return nil, err
			}
			return s.CreateKeyPair(req.Context(), spec)
		},
		Delete: func(req *resource.Request, current *domain.KeyPair) error {
			s, err := securityOf(req)
			if err != nil {
				return err
			}
			return s.DeleteKeyPair(req.Context(), current.ID)
		},
		Permission: deps.permission(),
	})
	if err != nil {
		return err
	}
	if err := r.Register("security/keypairs", keyPairs, "keypair"); err != nil {
		return err
	}

	groups, err := resource.NewHandler(resource.Definition[*domain.SecurityGroup]{
		Kind:         domain.KindSecurityGroup,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveDirect,
		List: func(req *resource.Request) ([]*domain.SecurityGroup, error) {
			s, err := securityOf(req)
			if err != nil {
				return nil, err
			}
			return s.ListSecurityGroups(req.Context())
		},
		Get: func(req *resource.Request, id string) (*domain.SecurityGroup, error) {
			s, err := securityOf(req)
			if err != nil {
				return nil, err
			}
			return s.GetSecurityGroup(req.Context(), id)
		},
		NewInput: newInput[domain.SecurityGroupSpec](),
		Create: func(req *resource.Request, input any) (*domain.SecurityGroup, error) {
			spec, err := inputAs[domain.SecurityGroupSpec](input)
			if err != nil {
				return nil, err
			}
			s, err := securityOf(req)
			if err != nil {
				return nil, err
			}
			return s.CreateSecurityGroup(req.Context(), spec)
		},
		Delete: func(req *resource.Request, current *domain.SecurityGroup) error {
			s, err := securityOf(req)
			if err != nil {
				return err
			}
			return s.DeleteSecurityGroup(req.Context(), current.ID)
		},
		Permission: deps.permission(),
	})
	if err != nil {
		return err
	}
	if err := r.Register("security/security_groups", groups, "security_group"); err != nil {
		return err
	}

	// Rules have no lookup of their own on most providers, so a rule is
	// found by scanning its group's rule list.
	rules, err := resource.NewHandler(resource.Definition[*domain.SecurityGroupRule]{
		Kind:         domain.KindSecurityGroupRule,
		Capabilities: resource.Mutable,
		Retrieval:    resource.RetrieveFilteredList,
		ParentParam:  "security_group_pk",
		VerifyParent: func(req *resource.Request, groupID string) error {
			s, err := securityOf(req)
			if err != nil {
				return err
			}
			group, err := s.GetSecurityGroup(req.Context(), groupID)
			return deps.authorizeParent(req, group, err)
		},
		List: func(req *resource.Request) ([]*domain.SecurityGroupRule, error) {
			s, err := securityOf(req)
			if err != nil {
				return nil, err
			}
			return s.ListRules(req.Context(), req.Var("security_group_pk"))
		},
		NewInput: newInput[domain.RuleSpec](),
		Create: func(req *resource.Request, input any) (*domain.SecurityGroupRule, error) {
			spec, err := inputAs[domain.RuleSpec](input)
			if err != nil {
				return nil, err
			}
			s, err := securityOf(req)
			if err != nil {
				return nil, err
			}
			return s.CreateRule(req.Context(), req.Var("security_group_pk"), spec)
		},
		Delete: func(req *resource.Request, current *domain.SecurityGroupRule) error {
			s, err := securityOf(req)
			if err != nil {
				return err
			}
			return s.DeleteRule(req.Context(), req.Var("security_group_pk"), current.ID)
		},
	})
	if err != nil {
		return err
	}
	groupRouter, err := r.Nested("security/security_groups", "security_group")
	if err != nil {
		return err
	}
	return groupRouter.Register("rules", rules, "security_group_rule")
}
