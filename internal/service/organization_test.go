package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/queue"
	"github.com/ejay-detera/orgspace/internal/service"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/validation"
)

func fixedCodes(codes ...string) service.CodeGenerator {
	i := 0
	return func() (string, error) {
		c := codes[i%len(codes)]
		i++
		return c, nil
	}
}

var _ = Describe("OrganizationService", func() {
	var (
		svc       service.OrganizationService
		runner    *fakeTxRunner
		publisher *recordingPublisher
		ctx       context.Context
		input     service.CreateOrganizationInput
		codes     service.CodeGenerator
	)

	const actorID int64 = 42

	build := func() {
		svc = service.NewOrganizationService(runner, publisher, validation.New(time.Now), codes)
	}

	BeforeEach(func() {
		ctx = context.Background()
		runner = newFakeTxRunner()
		publisher = &recordingPublisher{}
		codes = service.GenerateOrganizationCode
		input = service.CreateOrganizationInput{
			Name:        "Chess Club",
			Description: "We play chess.",
			Type:        "Academic",
		}
		build()
	})

	It("provisions the organization, executive committee and president membership together", func() {
		res, err := svc.Create(ctx, input, actorID)
		Expect(err).NotTo(HaveOccurred())

		org := res.Organization
		Expect(org.ID).NotTo(BeZero())
		Expect(org.Status).To(Equal(model.OrganizationStatusActive))
		Expect(org.Code).To(MatchRegexp(`^[A-Z0-9]{10}$`))
		Expect(org.CreatedBy).To(Equal(actorID))
		Expect(org.Image).To(BeNil())

		Expect(res.Committee.OrganizationID).To(Equal(org.ID))
		Expect(res.Committee.Name).To(Equal("Executive Committee"))
		Expect(res.Committee.Description).To(Equal("The highest governing body of the organization."))
		Expect(res.Committee.IsPublic).To(BeFalse())
		Expect(res.Committee.CreatedBy).To(HaveValue(Equal(actorID)))

		Expect(res.Membership.UserID).To(Equal(actorID))
		Expect(res.Membership.OrganizationID).To(Equal(org.ID))
		Expect(res.Membership.Role).To(Equal(model.MemberRolePresident))
		Expect(res.Membership.Status).To(Equal(model.MemberStatusActive))

		Expect(runner.committed.organizations).To(HaveLen(1))
		Expect(runner.committed.committees).To(HaveLen(1))
		Expect(runner.committed.memberships).To(HaveLen(1))

		Expect(publisher.events).To(HaveLen(1))
		Expect(publisher.events[0].Type).To(Equal(queue.EventOrganizationCreated))
		Expect(publisher.events[0].OrganizationID).To(HaveValue(Equal(org.ID)))
	})

	It("rejects invalid input without opening a transaction", func() {
		input.Name = ""
		input.Type = ""
		input.Image = string(make([]byte, 2049))

		_, err := svc.Create(ctx, input, actorID)

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors).To(HaveKey("name"))
		Expect(verr.Errors).To(HaveKey("type"))
		Expect(runner.txCalls).To(BeZero())
	})

	It("rejects a taken name and leaves existing data untouched", func() {
		_, err := svc.Create(ctx, input, actorID)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Create(ctx, input, 7)

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors.First("name")).To(Equal("The name has already been taken."))
		Expect(runner.committed.organizations).To(HaveLen(1))
		Expect(runner.committed.memberships).To(HaveLen(1))
		Expect(publisher.events).To(HaveLen(1))
	})

	It("maps a name unique violation raised on insert to the name error", func() {
		runner.createOrgFn = func(*model.Organization) error {
			return &store.ConflictError{Constraint: store.ConstraintOrganizationName}
		}

		_, err := svc.Create(ctx, input, actorID)

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors.First("name")).To(Equal(validation.MsgNameTaken))
	})

	DescribeTable("rolls back everything when a later step fails",
		func(setup func(r *fakeTxRunner)) {
			setup(runner)

			_, err := svc.Create(ctx, input, actorID)

			Expect(err).To(MatchError(service.ErrProvisioningFailed))
			Expect(runner.committed.organizations).To(BeEmpty())
			Expect(runner.committed.committees).To(BeEmpty())
			Expect(runner.committed.memberships).To(BeEmpty())
			Expect(publisher.events).To(BeEmpty())
		},
		Entry("committee insert fails", func(r *fakeTxRunner) {
			r.createCommitteeFn = func(*model.Committee) error { return errors.New("boom") }
		}),
		Entry("membership insert fails", func(r *fakeTxRunner) {
			r.createMembershipFn = func(*model.Membership) error { return errors.New("boom") }
		}),
	)

	It("retries with a fresh code when the code collides", func() {
		codes = fixedCodes("AAAAAAAAAA")
		build()
		other := input
		other.Name = "Debate Society"
		_, err := svc.Create(ctx, other, actorID)
		Expect(err).NotTo(HaveOccurred())

		codes = fixedCodes("AAAAAAAAAA", "BBBBBBBBBB")
		build()
		txBefore := runner.txCalls

		res, err := svc.Create(ctx, input, actorID)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Organization.Code).To(Equal("BBBBBBBBBB"))
		Expect(runner.txCalls - txBefore).To(Equal(2))
		Expect(runner.committed.organizations).To(HaveLen(2))
	})

	It("fails after three code collisions", func() {
		codes = fixedCodes("AAAAAAAAAA")
		build()
		other := input
		other.Name = "Debate Society"
		_, err := svc.Create(ctx, other, actorID)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Create(ctx, input, actorID)
		Expect(err).To(MatchError(service.ErrProvisioningFailed))
		Expect(runner.committed.organizations).To(HaveLen(1))
		Expect(runner.txCalls).To(Equal(4))
	})
})

var _ = Describe("GenerateOrganizationCode", func() {
	It("produces distinct 10 character codes", func() {
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			code, err := service.GenerateOrganizationCode()
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(MatchRegexp(`^[A-Z0-9]{10}$`))
			seen[code] = true
		}
		Expect(seen).To(HaveLen(50))
	})
})
