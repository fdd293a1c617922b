package types

// LogInterface é o subconjunto do console usado por componentes sem saída visual.
type LogInterface interface {
	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})
}

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	LogInterface

	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayBars(title string, bars []Bar)
	DisplayTrendBars(title string, points []TrendPoint)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// Bar é uma linha de um gráfico de barras horizontal.
// Display é o texto exibido ao lado da barra; vazio usa o valor numérico.
type Bar struct {
	Label   string
	Value   float64
	Display string
}

// TrendPoint representa o valor de um período, usado para gráficos de tendência.
type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}
