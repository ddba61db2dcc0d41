package coordinate

// Type is the shape of a component, i.e. the package ecosystem it belongs to.
type Type string

const (
	TypeComposer      Type = "composer"
	TypeConda         Type = "conda"
	TypeCondaSrc      Type = "condasrc"
	TypeCrate         Type = "crate"
	TypeDeb           Type = "deb"
	TypeDebSrc        Type = "debsrc"
	TypeGem           Type = "gem"
	TypeGit           Type = "git"
	TypeGo            Type = "go"
	TypeMaven         Type = "maven"
	TypeNPM           Type = "npm"
	TypeNuGet         Type = "nuget"
	TypePod           Type = "pod"
	TypePyPI          Type = "pypi"
	TypeSourceArchive Type = "sourcearchive"
)

var knownTypes = map[Type]struct{}{
	TypeComposer:      {},
	TypeConda:         {},
	TypeCondaSrc:      {},
	TypeCrate:         {},
	TypeDeb:           {},
	TypeDebSrc:        {},
	TypeGem:           {},
	TypeGit:           {},
	TypeGo:            {},
	TypeMaven:         {},
	TypeNPM:           {},
	TypeNuGet:         {},
	TypePod:           {},
	TypePyPI:          {},
	TypeSourceArchive: {},
}

// Valid reports whether t is a type understood by the service.
func (t Type) Valid() bool {
	_, ok := knownTypes[t]
	return ok
}

func (t Type) String() string { return string(t) }

// Provider is the registry or host a component is fetched from.
type Provider string

const (
	ProviderAnacondaMain Provider = "anaconda-main"
	ProviderAnacondaR    Provider = "anaconda-r"
	ProviderCocoaPods    Provider = "cocoapods"
	ProviderCondaForge   Provider = "conda-forge"
	ProviderCratesIO     Provider = "cratesio"
	ProviderDebian       Provider = "debian"
	ProviderGitHub       Provider = "github"
	ProviderGitLab       Provider = "gitlab"
	ProviderGolang       Provider = "golang"
	ProviderGradlePlugin Provider = "gradleplugin"
	ProviderMavenCentral Provider = "mavencentral"
	ProviderMavenGoogle  Provider = "mavengoogle"
	ProviderNPMJS        Provider = "npmjs"
	ProviderNuGet        Provider = "nuget"
	ProviderPackagist    Provider = "packagist"
	ProviderPyPI         Provider = "pypi"
	ProviderRubyGems     Provider = "rubygems"
)

var knownProviders = map[Provider]struct{}{
	ProviderAnacondaMain: {},
	ProviderAnacondaR:    {},
	ProviderCocoaPods:    {},
	ProviderCondaForge:   {},
	ProviderCratesIO:     {},
	ProviderDebian:       {},
	ProviderGitHub:       {},
	ProviderGitLab:       {},
	ProviderGolang:       {},
	ProviderGradlePlugin: {},
	ProviderMavenCentral: {},
	ProviderMavenGoogle:  {},
	ProviderNPMJS:        {},
	ProviderNuGet:        {},
	ProviderPackagist:    {},
	ProviderPyPI:         {},
	ProviderRubyGems:     {},
}

// Valid reports whether p is a provider understood by the service.
func (p Provider) Valid() bool {
	_, ok := knownProviders[p]
	return ok
}

func (p Provider) String() string { return string(p) }
