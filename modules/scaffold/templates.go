package scaffold

const packageJSONTemplate = `{
  "name": "{{.Name}}",
  "version": "0.1.0",
  "private": true,
  "scripts": {}
}
`

const readmeTemplate = `# {{.Name}}

Generated with mosaic.

## Quick start

` + "```bash" + `
{{.PackageMgr}} install
{{.PackageMgr}} run dev
` + "```" + `
`

const gitignoreContent = `node_modules/
dist/
target/
.env
`
