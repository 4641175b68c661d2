package chainui

const appShellTemplate = `import "./styles/base.css";

const THEME = "{{.Theme}}";

export default function App() {
  return (
    <main data-theme={THEME}>
      <h1>{{.Title}}</h1>
      <p>Connect a wallet to get started.</p>
    </main>
  );
}
`

const indexHTMLTemplate = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{.Title}} · {{.Project}}</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/main.tsx"></script>
  </body>
</html>
`
