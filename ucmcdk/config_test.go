package ucmcdk_test

import (
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("config", Serial, func() {
	It("should copy without changing the original", func() {
		stag1 := ucmcdk.NewStagingConfig()
		stag2 := stag1.Copy(ucmcdk.WithLambdaApplicationLogLevel(jsii.String("INFO")))

		Expect(*stag1.LambdaApplicationLogLevel()).To(Equal("DEBUG")) // should not have changed
		Expect(*stag2.LambdaApplicationLogLevel()).To(Equal("INFO"))  // should have changed
		Expect(*stag2.LambdaSystemLogLevel()).To(Equal("DEBUG"))      // should not have changed
	})

	It("should harden defaults for production", func() {
		prod := ucmcdk.NewProductionConfig()

		Expect(*prod.LambdaApplicationLogLevel()).To(Equal("INFO"))
		Expect(*prod.QueueMaxReceiveCount()).To(BeNumerically("==", 3))
	})
})
