package skills

// SeedCorpus is a representative slice of the BNCC mathematics skill
// corpus. It backs the static retriever and the ingest fixtures; the full
// corpus is loaded into the vector index by `varix ingest`.
func SeedCorpus() []SkillRecord {
	return []SkillRecord{
		{
			Code:            "EF06MA13",
			Description:     "Resolver e elaborar problemas que envolvam porcentagens, com base na ideia de proporcionalidade, sem fazer uso da regra de três.",
			GradeBand:       "6º",
			ThematicUnit:    "Números",
			KnowledgeObject: "Cálculo de porcentagens por meio de estratégias diversas",
		},
		{
			Code:            "EF07MA17",
			Description:     "Resolver e elaborar problemas que envolvam variação de proporcionalidade direta e inversa entre duas grandezas.",
			GradeBand:       "7º",
			ThematicUnit:    "Álgebra",
			KnowledgeObject: "Problemas envolvendo grandezas diretamente e inversamente proporcionais",
		},
		{
			Code:            "EF08MA06",
			Description:     "Resolver e elaborar problemas que envolvam cálculo do valor numérico de expressões algébricas, utilizando as propriedades das operações.",
			GradeBand:       "8º",
			ThematicUnit:    "Álgebra",
			KnowledgeObject: "Valor numérico de expressões algébricas",
		},
		{
			Code:            "EF08MA19",
			Description:     "Resolver e elaborar problemas que envolvam medidas de área de figuras geométricas, utilizando expressões de cálculo de área.",
			GradeBand:       "8º",
			ThematicUnit:    "Grandezas e medidas",
			KnowledgeObject: "Área de figuras planas",
		},
		{
			Code:            "EF09MA06",
			Description:     "Compreender as funções como relações de dependência unívoca entre duas variáveis e suas representações numérica, algébrica e gráfica.",
			GradeBand:       "9º",
			ThematicUnit:    "Álgebra",
			KnowledgeObject: "Funções: representações numérica, algébrica e gráfica",
		},
		{
			Code:            "EF09MA14",
			Description:     "Resolver e elaborar problemas de aplicação do teorema de Pitágoras ou das relações de proporcionalidade envolvendo retas paralelas cortadas por secantes.",
			GradeBand:       "9º",
			ThematicUnit:    "Geometria",
			KnowledgeObject: "Relações métricas no triângulo retângulo",
		},
		{
			Code:            "EM13MAT101",
			Description:     "Interpretar criticamente situações econômicas, sociais e fatos relativos às ciências da natureza que envolvam a variação de grandezas.",
			GradeBand:       "1ª",
			ThematicUnit:    "Números e Álgebra",
			KnowledgeObject: "Variação de grandezas",
		},
		{
			Code:            "EM13MAT302",
			Description:     "Construir modelos empregando as funções polinomiais de 1º ou 2º graus, para resolver problemas em contextos diversos.",
			GradeBand:       "1ª",
			ThematicUnit:    "Álgebra",
			KnowledgeObject: "Funções polinomiais de 1º e 2º graus",
		},
		{
			Code:            "EM13MAT309",
			Description:     "Resolver e elaborar problemas que envolvem o cálculo de áreas totais e de volumes de prismas, pirâmides e corpos redondos em situações reais.",
			GradeBand:       "2ª",
			ThematicUnit:    "Geometria e Medidas",
			KnowledgeObject: "Áreas e volumes de sólidos",
		},
		{
			Code:            "EM13MAT311",
			Description:     "Identificar e descrever o espaço amostral de eventos aleatórios, realizando contagem das possibilidades, para resolver e elaborar problemas que envolvem o cálculo da probabilidade.",
			GradeBand:       "2ª",
			ThematicUnit:    "Probabilidade e Estatística",
			KnowledgeObject: "Probabilidade: espaço amostral e contagem",
		},
		{
			Code:            "EM13MAT313",
			Description:     "Utilizar, quando necessário, a notação científica para expressar uma medida, compreendendo as noções de algarismos significativos, e reconhecer que toda medida é inevitavelmente acompanhada de erro.",
			GradeBand:       "3ª",
			ThematicUnit:    "Grandezas e Medidas",
			KnowledgeObject: "Notação científica e ordens de grandeza",
		},
		{
			Code:            "EM13MAT405",
			Description:     "Utilizar conceitos iniciais de uma linguagem de programação na implementação de algoritmos escritos em linguagem corrente e/ou matemática.",
			GradeBand:       "3ª",
			ThematicUnit:    "Álgebra",
			KnowledgeObject: "Algoritmos e fluxogramas",
		},
	}
}
