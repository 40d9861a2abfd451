package config

// Manifest represents the structure of the ccdrive.yaml build manifest.
type Manifest struct {
	Name            string              `yaml:"name"`
	BuildDir        string              `yaml:"build_dir"`
	Sources         []string            `yaml:"sources"`
	IncludeDirs     []string            `yaml:"include_dirs"`
	BaseFlags       []string            `yaml:"base_flags"`
	Std             string              `yaml:"std"`
	PathFlags       []PathFlagsDTO      `yaml:"path_flags"`
	PlatformFlags   map[string][]string `yaml:"platform_flags"`
	Lex             []string            `yaml:"lex"`
	Yacc            []string            `yaml:"yacc"`
	GeneratedDir    string              `yaml:"generated_dir"`
	Version         *VersionDTO         `yaml:"version"`
	Executable      *ExecutableDTO      `yaml:"executable"`
	Closure         *ClosureDTO         `yaml:"closure"`
	XMLConversions  []XMLConversionDTO  `yaml:"xml_conversions"`
	TaskXML         []string            `yaml:"task_xml"`
	Package         PackageDTO          `yaml:"package"`
	PrivateScripts  []string            `yaml:"private_scripts"`
	PrivateModules  []string            `yaml:"private_modules"`
	RequiredOptions []string            `yaml:"required_options"`
}

// PathFlagsDTO is one entry of the path flag table.
type PathFlagsDTO struct {
	Pattern string   `yaml:"pattern"`
	Flags   []string `yaml:"flags"`
}

// VersionDTO configures the version file.
type VersionDTO struct {
	Script   string   `yaml:"script"`
	Args     []string `yaml:"args"`
	Dir      string   `yaml:"dir"`
	Template string   `yaml:"template"`
	Output   string   `yaml:"output"`
	Prefix   string   `yaml:"prefix"`
	Desc     string   `yaml:"desc"`
}

// ExecutableDTO describes the final program link.
type ExecutableDTO struct {
	Name               string              `yaml:"name"`
	Libraries          []string            `yaml:"libraries"`
	LibraryDirs        []string            `yaml:"library_dirs"`
	RuntimeLibraryDirs []string            `yaml:"runtime_library_dirs"`
	PreArgs            []string            `yaml:"pre_args"`
	PostArgs           []string            `yaml:"post_args"`
	RPath              string              `yaml:"rpath"`
	LinkFlags          map[string][]string `yaml:"link_flags"`
	StaticArchives     []string            `yaml:"static_archives"`
	VendoredFragments  []string            `yaml:"vendored_fragments"`
}

// ClosureDTO configures the module closure script.
type ClosureDTO struct {
	Script string `yaml:"script"`
}

// XMLConversionDTO is one XML upgrade.
type XMLConversionDTO struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
}

// PackageDTO describes the generated package init file.
type PackageDTO struct {
	FileName string   `yaml:"file_name"`
	Imports  []string `yaml:"imports"`
}
