// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestInvalidCacheReaper(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "invalid cache reaper suite")
}

var _ = Describe("resetInvalidTick", func() {
	var m *Mempool

	BeforeEach(func() {
		m = newTestMempool(testConfig(), newMockAccounts(), newMockTxLogic())
	})

	AfterEach(func() {
		m.Quit()
	})

	Context("when the invalid cache holds rejected ids", func() {
		BeforeEach(func() {
			m.exec(func() {
				m.pools.invalid.add("rejected1")
				m.pools.invalid.add("rejected2")
			})
		})

		It("clears every id on the next tick", func() {
			m.exec(m.resetInvalidTick)

			var count int
			m.exec(func() { count = m.pools.invalid.count() })
			Expect(count).To(Equal(0))
		})

		It("gives a previously rejected id another chance at admission", func() {
			var wasInvalid bool
			m.exec(func() { wasInvalid = m.pools.invalid.contains("rejected1") })
			Expect(wasInvalid).To(BeTrue())

			m.exec(m.resetInvalidTick)

			m.exec(func() { wasInvalid = m.pools.invalid.contains("rejected1") })
			Expect(wasInvalid).To(BeFalse())
		})
	})

	Context("when the invalid cache is already empty", func() {
		It("is a no-op", func() {
			m.exec(m.resetInvalidTick)

			var count int
			m.exec(func() { count = m.pools.invalid.count() })
			Expect(count).To(Equal(0))
		})
	})
})
