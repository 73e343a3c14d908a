package ucmcdk

import "strconv"

type conventions struct {
	qualifier  string
	mainRegion string
}

// NewConventions inits a convention instance.
func NewConventions(qual, mainRegion string) Conventions {
	return conventions{qualifier: qual, mainRegion: mainRegion}
}

func (c conventions) InstancedStackName(instance int) string {
	return c.Qualifier() +
		strconv.Itoa(instance)
}

func (c conventions) Qualifier() string {
	return c.qualifier
}

func (c conventions) MainRegion() string {
	return c.mainRegion
}

// DeployedStackPrefix names the prefix shared by all stacks the management lambda deploys. The
// permission policies are scoped to this prefix so the platform can only manage its own stacks.
func (c conventions) DeployedStackPrefix() string {
	return c.Qualifier() + "UseCase"
}

// Conventions describes the interface for retrieving info that needs to be consistent between
// the stack and the other programs, i.e: magefiles. Conventions are shared between all stacks,
// instances, accounts and regions.
type Conventions interface {
	InstancedStackName(instance int) string
	Qualifier() string
	MainRegion() string
	DeployedStackPrefix() string
}
