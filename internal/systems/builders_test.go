package systems_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/systems"
)

var _ = Describe("Orbital", func() {
	var p systems.OrbitalParams

	BeforeEach(func() {
		p = systems.DefaultOrbitalParams()
		p.Count = 6
	})

	It("places the primary at rest at the origin", func() {
		sc, err := systems.Orbital(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Bodies).To(HaveLen(7))
		Expect(sc.Bodies[0].Position.IsZero()).To(BeTrue())
		Expect(sc.Bodies[0].Velocity.IsZero()).To(BeTrue())
		Expect(sc.Bodies[0].Mass()).To(Equal(p.PrimaryMass))
		Expect(sc.Speed).To(Equal(physics.Year / 3))
	})

	It("spaces satellites evenly on the orbit with tangential circular speed", func() {
		sc, err := systems.Orbital(p)
		Expect(err).NotTo(HaveOccurred())

		want := math.Sqrt(physics.GravitationalConstant * (p.PrimaryMass + p.SatelliteMass) / p.OrbitRadius)
		for i, sat := range sc.Bodies[1:] {
			angle := 2 * math.Pi * float64(i) / float64(p.Count)
			Expect(sat.Position.Magnitude()).To(BeNumerically("~", p.OrbitRadius, p.OrbitRadius*1e-12))
			Expect(sat.Position.Distance(dynamo.FromAngle(angle, p.OrbitRadius))).To(BeNumerically("<", p.OrbitRadius*1e-12))
			Expect(sat.Velocity.Magnitude()).To(BeNumerically("~", want, want*1e-12))
			Expect(sat.Position.Dot(sat.Velocity) / (p.OrbitRadius * want)).To(BeNumerically("~", 0, 1e-12))
			// +90°: counter-clockwise motion
			Expect(sat.Position.Cross(sat.Velocity)).To(BeNumerically(">", 0))
		}
	})

	It("scales the speed by the velocity multiplier", func() {
		p.VelocityMultiplier = 1.2
		sc, err := systems.Orbital(p)
		Expect(err).NotTo(HaveOccurred())

		want := 1.2 * math.Sqrt(physics.GravitationalConstant*(p.PrimaryMass+p.SatelliteMass)/p.OrbitRadius)
		Expect(sc.Bodies[1].Velocity.Magnitude()).To(BeNumerically("~", want, want*1e-12))
	})

	DescribeTable("rejects invalid parameters",
		func(mutate func(*systems.OrbitalParams)) {
			mutate(&p)
			_, err := systems.Orbital(p)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfiguration))
		},
		Entry("zero count", func(p *systems.OrbitalParams) { p.Count = 0 }),
		Entry("negative count", func(p *systems.OrbitalParams) { p.Count = -3 }),
		Entry("zero orbit radius", func(p *systems.OrbitalParams) { p.OrbitRadius = 0 }),
		Entry("zero primary mass", func(p *systems.OrbitalParams) { p.PrimaryMass = 0 }),
		Entry("negative satellite mass", func(p *systems.OrbitalParams) { p.SatelliteMass = -1 }),
		Entry("zero primary radius", func(p *systems.OrbitalParams) { p.PrimaryRadius = 0 }),
		Entry("zero satellite radius", func(p *systems.OrbitalParams) { p.SatelliteRadius = 0 }),
		Entry("NaN multiplier", func(p *systems.OrbitalParams) { p.VelocityMultiplier = math.NaN() }),
	)
})

var _ = Describe("RandomCloud", func() {
	var p systems.CloudParams

	BeforeEach(func() {
		p = systems.DefaultCloudParams()
		p.Count = 50
	})

	It("is reproducible for a fixed seed", func() {
		a, err := systems.RandomCloud(p, rand.New(rand.NewSource(9)))
		Expect(err).NotTo(HaveOccurred())
		b, err := systems.RandomCloud(p, rand.New(rand.NewSource(9)))
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Speed).To(Equal(b.Speed))
		for i := range a.Bodies {
			Expect(a.Bodies[i].Position).To(Equal(b.Bodies[i].Position))
			Expect(a.Bodies[i].Velocity).To(Equal(b.Bodies[i].Velocity))
			Expect(a.Bodies[i].Mass()).To(Equal(b.Bodies[i].Mass()))
		}
	})

	It("keeps every sample inside the configured ranges", func() {
		sc, err := systems.RandomCloud(p, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Bodies).To(HaveLen(51))

		primary := sc.Bodies[0]
		Expect(primary.Position.IsZero()).To(BeTrue())
		Expect(primary.Mass()).To(BeNumerically(">=", p.PrimaryMass.Min))
		Expect(primary.Mass()).To(BeNumerically("<=", p.PrimaryMass.Max))

		speed := physics.CircularVelocity(primary.Mass(), p.ReferenceDistance)
		for _, sat := range sc.Bodies[1:] {
			r := sat.Position.Magnitude()
			Expect(r).To(BeNumerically(">=", p.OrbitRadius.Min*(1-1e-12)))
			Expect(r).To(BeNumerically("<=", p.OrbitRadius.Max*(1+1e-12)))
			Expect(sat.Mass()).To(BeNumerically(">=", p.SatelliteMass.Min))
			Expect(sat.Mass()).To(BeNumerically("<=", p.SatelliteMass.Max))
			Expect(sat.Density()).To(BeNumerically("~", (p.SatelliteDensity.Min+p.SatelliteDensity.Max)/2, 2.25+1e-9))
			// speed comes from the reference distance, not the satellite's own
			Expect(sat.Velocity.Magnitude()).To(BeNumerically("~", speed, speed*1e-12))
		}

		Expect(sc.Speed).To(BeNumerically(">=", physics.Year/p.SpeedDivisor.Max))
		Expect(sc.Speed).To(BeNumerically("<=", physics.Year/p.SpeedDivisor.Min))
	})

	It("maps a pinned primary mass onto the speed divisor", func() {
		p.PrimaryMass = systems.Range{Min: 1e33, Max: 1e33}
		sc, err := systems.RandomCloud(p, rand.New(rand.NewSource(1)))
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Speed).To(Equal(physics.Year / p.SpeedDivisor.Min))
	})

	It("rejects a non-positive count", func() {
		p.Count = 0
		_, err := systems.RandomCloud(p, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(dynamo.ErrInvalidConfiguration))
	})

	It("rejects an inverted range", func() {
		p.OrbitRadius = systems.Range{Min: 2, Max: 1}
		_, err := systems.RandomCloud(p, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(dynamo.ErrInvalidConfiguration))
	})
})

var _ = Describe("EarthMoon", func() {
	It("gives the Moon its real orbital speed", func() {
		sc, err := systems.EarthMoon()
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Bodies).To(HaveLen(2))

		moon := sc.Bodies[1]
		Expect(moon.Position.Magnitude()).To(Equal(systems.EarthMoonDistance))
		Expect(moon.Velocity.Magnitude()).To(BeNumerically("~", 1022, 1022*0.01))
		Expect(sc.Speed).To(Equal(physics.Day))
	})

	It("uses the literal reference masses and radii", func() {
		sc, _ := systems.EarthMoon()
		Expect(sc.Bodies[0].Mass()).To(Equal(5.972e24))
		Expect(sc.Bodies[0].Radius()).To(Equal(6.371e6))
		Expect(sc.Bodies[1].Mass()).To(Equal(7.342e22))
		Expect(sc.Bodies[1].Radius()).To(Equal(1.7374e6))
	})
})

var _ = Describe("Build", func() {
	It("dispatches every registered kind", func() {
		rng := rand.New(rand.NewSource(5))
		params := systems.DefaultParams()
		params.Cloud.Count = 10
		for _, kind := range systems.Kinds() {
			sc, err := systems.Build(kind, params, rng)
			Expect(err).NotTo(HaveOccurred(), kind)
			Expect(sc.Kind).To(Equal(kind))
			Expect(sc.Bodies).NotTo(BeEmpty())
		}
	})

	It("lists kinds in order", func() {
		Expect(systems.Kinds()).To(Equal([]string{"cloud", "earth-moon", "orbital"}))
	})

	It("rejects unknown kinds", func() {
		_, err := systems.Build("galaxy", systems.DefaultParams(), nil)
		Expect(err).To(MatchError(ContainSubstring("unknown scenario")))
	})

	It("requires a random source for clouds", func() {
		_, err := systems.Build(systems.KindCloud, systems.DefaultParams(), nil)
		Expect(err).To(MatchError(dynamo.ErrInvalidConfiguration))

		_, err = systems.RandomCloud(systems.DefaultCloudParams(), nil)
		Expect(err).To(MatchError(dynamo.ErrInvalidConfiguration))
	})

	It("clones scenarios deeply", func() {
		sc, _ := systems.EarthMoon()
		c := sc.Clone()
		c.Bodies[1].Position = dynamo.Zero
		Expect(sc.Bodies[1].Position.IsZero()).To(BeFalse())
	})
})
