package ucmcdk_test

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("stack", func() {
	var app awscdk.App
	var conv ucmcdk.Conventions

	BeforeEach(func() {
		app = awscdk.NewApp(nil)

		conv = ucmcdk.NewConventions("UcMan", "eu-west-1")
	})

	It("should create an instanced stack with instance context", func() {
		app.Node().SetContext(jsii.String("instance"), jsii.String("1"))

		stack := ucmcdk.NewInstancedStack(app, conv, "111111")
		tmpl := assertions.Template_FromStack(stack, nil)
		data := *tmpl.ToJSON()

		Expect(*stack.Node().Id()).To(Equal(`UcMan1`))
		Expect(data["Description"]).To(Equal("UcMan (instance: 1)"))
		Expect(*awscdk.Stack_Of(stack).Account()).To(Equal("111111"))
		Expect(*awscdk.Stack_Of(stack).Region()).To(Equal("eu-west-1"))
	})

	// we don't want the code to panic without an instance or the bootstrap logic won't succeed. In
	// case of the bootstrap we never have an instance in the context.
	It("should not panic without instance context", func() {
		stack := ucmcdk.NewInstancedStack(app, conv, "111111")

		tmpl := assertions.Template_FromStack(stack, nil)
		data := *tmpl.ToJSON()

		Expect(data["Description"]).To(Equal("UcMan (instance: 0)"))
	})

	It("should name deployed stacks under the qualifier", func() {
		Expect(conv.DeployedStackPrefix()).To(Equal("UcManUseCase"))
		Expect(conv.InstancedStackName(2)).To(Equal("UcMan2"))
	})
})
